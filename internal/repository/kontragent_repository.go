package repository

import (
	"context"
	"strings"

	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/domain"
	"gorm.io/gorm"
)

type KontragentRepository struct {
	db *gorm.DB
}

func NewKontragentRepository(db *gorm.DB) *KontragentRepository {
	return &KontragentRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *KontragentRepository) WithTx(tx *gorm.DB) *KontragentRepository {
	return &KontragentRepository{db: tx}
}

// ListResult holds one page of the kontragent grid and both executed statements
type ListResult struct {
	Rows  []domain.KontragentListRow
	Total int64
	Count Executed
	Data  Executed
}

// Failure returns the first failure of the count and data statements
func (l ListResult) Failure() *database.Failure {
	if l.Count.Failure != nil {
		return l.Count.Failure
	}
	return l.Data.Failure
}

// ListStatements builds the count and page statements of a grid request. Both share one predicate.
func ListStatements(req domain.ListKontragentRequest) (count, data database.Statement) {
	conditions := make([]string, 0, 4)
	params := map[string]interface{}{}

	switch req.DeleteStatus {
	case domain.DeleteStatusActive:
		conditions = append(conditions, "k.is_delete = 0")
	case domain.DeleteStatusDeleted:
		conditions = append(conditions, "k.is_delete = 1")
	}

	switch req.Type {
	case domain.KontragentTypeIndividual:
		conditions = append(conditions, "k.typeuser = '"+domain.TypeuserIndividual+"'")
	case domain.KontragentTypeLegalEntity:
		conditions = append(conditions, "k.typeuser IS NULL AND k.is_operator = 0")
	case domain.KontragentTypeAgency:
		conditions = append(conditions, "k.typeuser = '"+domain.TypeuserAgency+"'")
	}

	if req.Search != "" {
		search := make([]string, 0, len(kontragentSearchColumns))
		for _, column := range kontragentSearchColumns {
			search = append(search, "LOWER("+column+") LIKE @search_value")
		}
		conditions = append(conditions, "("+strings.Join(search, " OR ")+")")
		params["search_value"] = likePattern(req.Search)
	}

	if f := req.Filter; f != nil {
		if column, ok := kontragentFilterColumns[f.Field]; ok {
			name := "filter_" + f.Field
			switch f.Operator {
			case "contains":
				conditions = append(conditions, "LOWER("+column+") LIKE @"+name)
				params[name] = likePattern(f.Value)
			case "=", "equals":
				conditions = append(conditions, column+" = @"+name)
				params[name] = f.Value
			}
		}
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	count = database.NewStatement("SELECT COUNT(k.id) FROM aa_kontragent k"+where, params)

	dataParams := make(map[string]interface{}, len(params)+2)
	for k, v := range params {
		dataParams[k] = v
	}
	dataParams["skip"] = req.Skip
	dataParams["take"] = req.Take
	data = database.NewStatement(
		"SELECT k.id, k.fio, k.name, k.shortname, k.inn, k.phone, k.email, k.address, k.is_delete, k.is_operator"+
			" FROM aa_kontragent k"+where+
			" ORDER BY "+BuildOrderClause(req.Sort, kontragentSortColumns, defaultKontragentOrder)+
			" LIMIT @take OFFSET @skip",
		dataParams,
	)
	return count, data
}

// List runs the count and page statements of a grid request
func (r *KontragentRepository) List(ctx context.Context, req domain.ListKontragentRequest) ListResult {
	countSt, dataSt := ListStatements(req)
	out := ListResult{Rows: []domain.KontragentListRow{}}

	out.Count = executed(countSt, database.Query(ctx, r.db, countSt, &out.Total))
	if !out.Count.OK() {
		return out
	}
	out.Data = executed(dataSt, database.Query(ctx, r.db, dataSt, &out.Rows))
	return out
}

const getKontragentSQL = "SELECT k.*, ko.reestrnum, ko.website, ko.membership, ko.amount_financial_support," +
	" ko.financial_support, ko.method_financial_support, ko.document, ko.term_financial_support," +
	" ko.firm_name_financial_support, ko.adress_firm_financial_support, ko.zipadress_firm_financial_support," +
	" ko.scope_operator, ko.order_number, ko.order_date, ko.certificate_number" +
	" FROM aa_kontragent k" +
	" LEFT JOIN aa_kontragent_operator ko ON ko.id_kontragent = k.id" +
	" WHERE k.id = @id AND k.is_delete = 0"

// GetDetails loads a non-deleted kontragent with its operator profile columns.
// A nil result with a successful statement means not found.
func (r *KontragentRepository) GetDetails(ctx context.Context, id int64) (*domain.KontragentDetails, Executed) {
	st := database.NewStatement(getKontragentSQL, map[string]interface{}{"id": id})
	var details domain.KontragentDetails
	res := database.Query(ctx, r.db, st, &details)
	if !res.OK() || res.RowsAffected == 0 {
		return nil, executed(st, res)
	}
	return &details, executed(st, res)
}

// kontragentColumns lists the columns written on both insert and update, in order
var kontragentColumns = []string{
	"name", "shortname", "inn", "kpp", "ogrn", "bank", "bik", "rs", "ks", "ua",
	"direktor_fio", "direktor_status", "buh_fio", "tax_own", "tax", "id_city", "id_region", "isokved",
	"can_create_subagent", "allow_print_vaucher", "is_operator", "birthday", "phone", "phone1", "phone2",
	"email", "zipcode", "passport_s", "passport_n", "passport_data", "passport_who", "discount_num",
	"discount", "fax", "id_user_last_update", "typeuser", "fio", "address", "city_fizik", "occupation",
	"workplace",
}

func kontragentParams(f *domain.KontragentFields, t domain.KontragentType, actorID int64) map[string]interface{} {
	return map[string]interface{}{
		"name":                nullable(f.Name),
		"shortname":           nullable(f.Shortname),
		"inn":                 nullable(f.Inn),
		"kpp":                 nullable(f.Kpp),
		"ogrn":                f.Ogrn,
		"bank":                nullable(f.Bank),
		"bik":                 nullable(f.Bik),
		"rs":                  nullable(f.Rs),
		"ks":                  nullable(f.Ks),
		"ua":                  nullable(f.Ua),
		"direktor_fio":        nullable(f.DirektorFio),
		"direktor_status":     nullable(f.DirektorStatus),
		"buh_fio":             nullable(f.BuhFio),
		"tax_own":             f.TaxOwn,
		"tax":                 f.Tax,
		"id_city":             f.IDCity,
		"id_region":           f.IDRegion,
		"isokved":             nullable(f.IsOkved),
		"can_create_subagent": f.CanCreateSubagent,
		"allow_print_vaucher": f.AllowPrintVaucher,
		"is_operator":         t.OperatorFlag(f.IsOperator),
		"birthday":            nullable(f.Birthday),
		"phone":               nullable(f.Phone),
		"phone1":              nullable(f.Phone1),
		"phone2":              nullable(f.Phone2),
		"email":               nullable(f.Email),
		"zipcode":             nullable(f.Zipcode),
		"passport_s":          nullable(f.PassportS),
		"passport_n":          nullable(f.PassportN),
		"passport_data":       nullable(f.PassportData),
		"passport_who":        nullable(f.PassportWho),
		"discount_num":        nullable(f.DiscountNum),
		"discount":            nullable(f.Discount),
		"fax":                 nullable(f.Fax),
		"id_user_last_update": actorID,
		"typeuser":            nullable(t.Typeuser()),
		"fio":                 nullable(f.Fio),
		"address":             nullable(f.Address),
		"city_fizik":          nullable(f.CityFizik),
		"occupation":          nullable(f.Occupation),
		"workplace":           nullable(f.Workplace),
	}
}

// InsertStatement builds the insert of a new kontragent. Creator columns are set only here.
func InsertStatement(f *domain.KontragentFields, t domain.KontragentType, actorID int64) database.Statement {
	params := kontragentParams(f, t, actorID)
	params["owner"] = 0
	params["user_id"] = actorID

	columns := append(append([]string{}, kontragentColumns...), "owner", "user_id")
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		placeholders[i] = "@" + c
	}
	return database.NewStatement(
		"INSERT INTO aa_kontragent ("+strings.Join(columns, ", ")+") VALUES ("+strings.Join(placeholders, ", ")+") RETURNING id",
		params,
	)
}

// UpdateStatement builds the update of an existing kontragent. Creator columns are never touched.
func UpdateStatement(id int64, f *domain.KontragentFields, t domain.KontragentType, actorID int64) database.Statement {
	params := kontragentParams(f, t, actorID)
	params["id"] = id

	sets := make([]string, len(kontragentColumns))
	for i, c := range kontragentColumns {
		sets[i] = c + " = @" + c
	}
	return database.NewStatement("UPDATE aa_kontragent SET "+strings.Join(sets, ", ")+" WHERE id = @id", params)
}

// Insert creates a kontragent and returns its id
func (r *KontragentRepository) Insert(ctx context.Context, f *domain.KontragentFields, t domain.KontragentType, actorID int64) (int64, Executed) {
	st := InsertStatement(f, t, actorID)
	var id int64
	res := database.Query(ctx, r.db, st, &id)
	return id, executed(st, res)
}

// Update overwrites the editable columns of a kontragent
func (r *KontragentRepository) Update(ctx context.Context, id int64, f *domain.KontragentFields, t domain.KontragentType, actorID int64) Executed {
	st := UpdateStatement(id, f, t, actorID)
	return executed(st, database.Exec(ctx, r.db, st))
}

// SetDeleted flips the soft-delete flag and stamps the last updater
func (r *KontragentRepository) SetDeleted(ctx context.Context, id int64, deleted bool, actorID int64) Executed {
	flag := 0
	if deleted {
		flag = 1
	}
	st := database.NewStatement(
		"UPDATE aa_kontragent SET is_delete = @is_delete, id_user_last_update = @id_user_last_update WHERE id = @id",
		map[string]interface{}{"is_delete": flag, "id_user_last_update": actorID, "id": id},
	)
	return executed(st, database.Exec(ctx, r.db, st))
}
