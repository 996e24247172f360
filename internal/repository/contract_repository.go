package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/domain"
	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// List returns the contracts of a kontragent with a company, newest first
func (r *ContractRepository) List(ctx context.Context, kontragentID, companyID int64) ([]domain.ContractRow, Executed) {
	st := database.NewStatement(
		"SELECT id, num, dtfrom, year FROM aa_list_dog_agent2company"+
			" WHERE id_kontragent = @id_kontragent AND id_company = @id_company"+
			" ORDER BY timecreate DESC, id DESC",
		map[string]interface{}{"id_kontragent": kontragentID, "id_company": companyID},
	)
	rows := []domain.ContractRow{}
	res := database.Query(ctx, r.db, st, &rows)
	return rows, executed(st, res)
}

// NextNumber returns max(num)+1 over the contracts of a company in a year, 1 when there are none.
// Numbers are read as unsigned integers; a non-numeric num counts as 0.
func (r *ContractRepository) NextNumber(ctx context.Context, companyID int64, year int) (int64, Executed) {
	st := database.NewStatement(
		"SELECT num FROM aa_list_dog_agent2company WHERE id_company = @id_company AND year = @year",
		map[string]interface{}{"id_company": companyID, "year": year},
	)
	var nums []string
	res := database.Query(ctx, r.db, st, &nums)
	if !res.OK() {
		return 0, executed(st, res)
	}

	var max int64
	for _, num := range nums {
		if n := unsignedPrefix(num); n > max {
			max = n
		}
	}
	return max + 1, executed(st, res)
}

// Insert creates a contract with the given number and returns its id
func (r *ContractRepository) Insert(ctx context.Context, req domain.SaveContractRequest, num string) (int64, Executed) {
	st := database.NewStatement(
		"INSERT INTO aa_list_dog_agent2company (id_kontragent, id_company, num, dtfrom, year, timecreate)"+
			" VALUES (@id_kontragent, @id_company, @num, @dtfrom, @year, CURRENT_TIMESTAMP) RETURNING id",
		map[string]interface{}{
			"id_kontragent": req.KontragentID,
			"id_company":    req.CompanyID,
			"num":           num,
			"dtfrom":        nullable(req.Dtfrom),
			"year":          req.Year,
		},
	)
	var id int64
	res := database.Query(ctx, r.db, st, &id)
	return id, executed(st, res)
}

// Update overwrites a contract owned by the kontragent and company of the request
func (r *ContractRepository) Update(ctx context.Context, req domain.SaveContractRequest) Executed {
	st := database.NewStatement(
		"UPDATE aa_list_dog_agent2company SET num = @num, dtfrom = @dtfrom, year = @year"+
			" WHERE id = @id AND id_kontragent = @id_kontragent AND id_company = @id_company",
		map[string]interface{}{
			"id":            req.ID,
			"id_kontragent": req.KontragentID,
			"id_company":    req.CompanyID,
			"num":           req.Num,
			"dtfrom":        nullable(req.Dtfrom),
			"year":          req.Year,
		},
	)
	return executed(st, database.Exec(ctx, r.db, st))
}

// Delete removes a contract owned by the kontragent
func (r *ContractRepository) Delete(ctx context.Context, id, kontragentID int64) Executed {
	st := database.NewStatement(
		"DELETE FROM aa_list_dog_agent2company WHERE id = @id AND id_kontragent = @id_kontragent",
		map[string]interface{}{"id": id, "id_kontragent": kontragentID},
	)
	return executed(st, database.Exec(ctx, r.db, st))
}

// unsignedPrefix reads the leading digits of s, 0 when there are none
func unsignedPrefix(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
