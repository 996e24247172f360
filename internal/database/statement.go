package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FailureKind distinguishes a rejected statement from a broken connection or transaction
type FailureKind string

const (
	// FailureExecute means the database rejected the statement
	FailureExecute FailureKind = "execute"
	// FailureException means the connection or transaction itself failed
	FailureException FailureKind = "exception"
)

// Failure is the error half of a Result
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Detail returns the driver error text
func (f *Failure) Detail() string {
	return f.Err.Error()
}

// IsException reports whether the failure is connection or transaction level
func (f *Failure) IsException() bool {
	return f.Kind == FailureException
}

// NewFailure classifies err into a Failure, nil for a nil error
func NewFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: Classify(err), Err: err}
}

// Statement is an SQL template with named @placeholders and their bound values
type Statement struct {
	SQL    string
	Params map[string]interface{}
}

// NewStatement creates a statement
func NewStatement(sql string, params map[string]interface{}) Statement {
	return Statement{SQL: sql, Params: params}
}

// Rendered returns the diagnostic form of the statement with values substituted
func (s Statement) Rendered() string {
	return Render(s.SQL, s.Params)
}

func (s Statement) args() []interface{} {
	if len(s.Params) == 0 {
		return nil
	}
	return []interface{}{s.Params}
}

// Result is the outcome of running a statement: rows affected or a classified failure
type Result struct {
	RowsAffected int64
	Failure      *Failure
}

// OK reports whether the statement succeeded
func (r Result) OK() bool {
	return r.Failure == nil
}

// Exec runs a statement that returns no rows
func Exec(ctx context.Context, db *gorm.DB, st Statement) Result {
	tx := db.WithContext(ctx).Exec(st.SQL, st.args()...)
	return Result{RowsAffected: tx.RowsAffected, Failure: NewFailure(tx.Error)}
}

// Query runs a statement and scans its rows into dest
func Query(ctx context.Context, db *gorm.DB, st Statement, dest interface{}) Result {
	tx := db.WithContext(ctx).Raw(st.SQL, st.args()...).Scan(dest)
	return Result{RowsAffected: tx.RowsAffected, Failure: NewFailure(tx.Error)}
}

// Begin opens a transaction. A failure to begin is always an exception.
func Begin(ctx context.Context, db *gorm.DB) (*gorm.DB, *Failure) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, &Failure{Kind: FailureException, Err: tx.Error}
	}
	return tx, nil
}

// Commit commits a transaction. A failure to commit is always an exception.
func Commit(tx *gorm.DB) *Failure {
	if err := tx.Commit().Error; err != nil {
		return &Failure{Kind: FailureException, Err: err}
	}
	return nil
}

// Rollback rolls a transaction back, ignoring an already finished transaction
func Rollback(tx *gorm.DB) {
	tx.Rollback()
}

// Classify decides whether err is a statement rejection or a connection/transaction failure
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, sql.ErrTxDone),
		errors.Is(err, gorm.ErrInvalidTransaction),
		errors.Is(err, gorm.ErrInvalidDB):
		return FailureException
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		code := pgErr.SQLState()
		if len(code) < 2 {
			return FailureExecute
		}
		switch code[:2] {
		// connection exception, insufficient resources, operator intervention
		case "08", "53", "57":
			return FailureException
		}
		return FailureExecute
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FailureException
	}

	if err.Error() == "sql: database is closed" {
		return FailureException
	}
	return FailureExecute
}
