package repository

import (
	"context"
	"strings"

	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/domain"
	"gorm.io/gorm"
)

// OperatorRepository persists the operator profile of agency kontragents
type OperatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *OperatorRepository) WithTx(tx *gorm.DB) *OperatorRepository {
	return &OperatorRepository{db: tx}
}

var operatorColumns = []string{
	"reestrnum", "website", "membership", "amount_financial_support", "financial_support",
	"method_financial_support", "document", "term_financial_support", "firm_name_financial_support",
	"adress_firm_financial_support", "zipadress_firm_financial_support", "scope_operator",
	"order_number", "order_date", "certificate_number",
}

func operatorParams(kontragentID int64, f *domain.OperatorFields) map[string]interface{} {
	return map[string]interface{}{
		"id_kontragent":                    kontragentID,
		"reestrnum":                        f.Reestrnum,
		"website":                          f.Website,
		"membership":                       f.Membership,
		"amount_financial_support":         f.AmountFinancialSupport,
		"financial_support":                f.FinancialSupport,
		"method_financial_support":         f.MethodFinancialSupport,
		"document":                         f.Document,
		"term_financial_support":           f.TermFinancialSupport,
		"firm_name_financial_support":      f.FirmNameFinancialSupport,
		"adress_firm_financial_support":    f.AdressFirmFinancialSupport,
		"zipadress_firm_financial_support": f.ZipadressFirmFinancialSupport,
		"scope_operator":                   f.ScopeOperator,
		"order_number":                     f.OrderNumber,
		"order_date":                       f.OrderDate,
		"certificate_number":               f.CertificateNumber,
	}
}

// Exists reports whether a profile row exists for the kontragent
func (r *OperatorRepository) Exists(ctx context.Context, kontragentID int64) (bool, Executed) {
	st := database.NewStatement(
		"SELECT COUNT(*) FROM aa_kontragent_operator WHERE id_kontragent = @id_kontragent",
		map[string]interface{}{"id_kontragent": kontragentID},
	)
	var count int64
	res := database.Query(ctx, r.db, st, &count)
	return count > 0, executed(st, res)
}

// Insert creates the profile row
func (r *OperatorRepository) Insert(ctx context.Context, kontragentID int64, f *domain.OperatorFields) Executed {
	columns := append([]string{"id_kontragent"}, operatorColumns...)
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		placeholders[i] = "@" + c
	}
	st := database.NewStatement(
		"INSERT INTO aa_kontragent_operator ("+strings.Join(columns, ", ")+") VALUES ("+strings.Join(placeholders, ", ")+")",
		operatorParams(kontragentID, f),
	)
	return executed(st, database.Exec(ctx, r.db, st))
}

// Update overwrites the profile row
func (r *OperatorRepository) Update(ctx context.Context, kontragentID int64, f *domain.OperatorFields) Executed {
	sets := make([]string, len(operatorColumns))
	for i, c := range operatorColumns {
		sets[i] = c + " = @" + c
	}
	st := database.NewStatement(
		"UPDATE aa_kontragent_operator SET "+strings.Join(sets, ", ")+" WHERE id_kontragent = @id_kontragent",
		operatorParams(kontragentID, f),
	)
	return executed(st, database.Exec(ctx, r.db, st))
}

// Delete removes the profile row
func (r *OperatorRepository) Delete(ctx context.Context, kontragentID int64) Executed {
	st := database.NewStatement(
		"DELETE FROM aa_kontragent_operator WHERE id_kontragent = @id_kontragent",
		map[string]interface{}{"id_kontragent": kontragentID},
	)
	return executed(st, database.Exec(ctx, r.db, st))
}
