package repository_test

import (
	"context"
	"testing"

	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/repository"
	"github.com/straye-as/kontragent-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func listRequest() domain.ListKontragentRequest {
	return domain.ListKontragentRequest{
		Type:         domain.KontragentTypeLegalEntity,
		Take:         100,
		DeleteStatus: domain.DeleteStatusActive,
	}
}

func TestListStatements_SharedPredicate(t *testing.T) {
	req := listRequest()
	req.Search = "Acme"

	count, data := repository.ListStatements(req)

	assert.Contains(t, count.SQL, "k.is_delete = 0")
	assert.Contains(t, count.SQL, "k.typeuser IS NULL AND k.is_operator = 0")
	assert.Contains(t, count.SQL, "LOWER(k.inn) LIKE @search_value")
	assert.Equal(t, "%acme%", count.Params["search_value"])

	where := count.SQL[len("SELECT COUNT(k.id) FROM aa_kontragent k"):]
	assert.Contains(t, data.SQL, where)
	assert.Contains(t, data.SQL, "ORDER BY k.id ASC LIMIT @take OFFSET @skip")
	assert.Equal(t, 100, data.Params["take"])
	assert.NotContains(t, count.Params, "take")
}

func TestListStatements_TypeAndStatus(t *testing.T) {
	tests := []struct {
		name    string
		typ     domain.KontragentType
		status  domain.DeleteStatus
		want    []string
		notWant []string
	}{
		{"individual active", domain.KontragentTypeIndividual, domain.DeleteStatusActive, []string{"k.typeuser = 'Fiz'", "k.is_delete = 0"}, nil},
		{"agency deleted", domain.KontragentTypeAgency, domain.DeleteStatusDeleted, []string{"k.typeuser = 'Agent'", "k.is_delete = 1"}, nil},
		{"legal all", domain.KontragentTypeLegalEntity, domain.DeleteStatusAll, []string{"k.typeuser IS NULL"}, []string{"is_delete ="}},
		{"unknown status", domain.KontragentTypeIndividual, domain.DeleteStatus("bogus"), nil, []string{"is_delete ="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := listRequest()
			req.Type = tt.typ
			req.DeleteStatus = tt.status

			count, _ := repository.ListStatements(req)
			for _, s := range tt.want {
				assert.Contains(t, count.SQL, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, count.SQL, s)
			}
		})
	}
}

func TestListStatements_Filter(t *testing.T) {
	req := listRequest()
	req.Filter = &domain.FilterTriple{Field: "name", Operator: "contains", Value: "Trav"}
	count, _ := repository.ListStatements(req)
	assert.Contains(t, count.SQL, "LOWER(k.name) LIKE @filter_name")
	assert.Equal(t, "%trav%", count.Params["filter_name"])

	req.Filter = &domain.FilterTriple{Field: "inn", Operator: "=", Value: "7701"}
	count, _ = repository.ListStatements(req)
	assert.Contains(t, count.SQL, "k.inn = @filter_inn")

	req.Filter = &domain.FilterTriple{Field: "name", Operator: "startswith", Value: "x"}
	count, _ = repository.ListStatements(req)
	assert.NotContains(t, count.SQL, "filter_")

	req.Filter = &domain.FilterTriple{Field: "password", Operator: "=", Value: "x"}
	count, _ = repository.ListStatements(req)
	assert.NotContains(t, count.SQL, "password")
}

func TestBuildOrderClause(t *testing.T) {
	columns := map[string]string{"name": "k.name", "inn": "k.inn"}

	assert.Equal(t, "k.id ASC", repository.BuildOrderClause(nil, columns, "k.id ASC"))
	assert.Equal(t, "k.name DESC, k.inn ASC", repository.BuildOrderClause([]domain.SortItem{
		{Selector: "name", Desc: true},
		{Selector: "inn"},
	}, columns, "k.id ASC"))
	assert.Equal(t, "k.id ASC", repository.BuildOrderClause([]domain.SortItem{
		{Selector: "name; DROP TABLE aa_kontragent"},
	}, columns, "k.id ASC"))
}

func insertKontragent(t *testing.T, db *gorm.DB, fields domain.KontragentFields, typ domain.KontragentType) int64 {
	t.Helper()
	id, ex := repository.NewKontragentRepository(db).Insert(context.Background(), &fields, typ, 9)
	require.True(t, ex.OK(), "insert failed: %v", ex.Failure)
	require.NotZero(t, id)
	return id
}

func TestKontragentRepository_InsertListAndGet(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := repository.NewKontragentRepository(db)
	ctx := context.Background()

	acme := insertKontragent(t, db, domain.KontragentFields{Name: testutil.Ptr("Acme"), Inn: testutil.Ptr("7701")}, domain.KontragentTypeLegalEntity)
	insertKontragent(t, db, domain.KontragentFields{Name: testutil.Ptr("Beta")}, domain.KontragentTypeLegalEntity)
	insertKontragent(t, db, domain.KontragentFields{Fio: testutil.Ptr("Ivanov")}, domain.KontragentTypeIndividual)

	res := repo.List(ctx, listRequest())
	require.Nil(t, res.Failure())
	assert.Equal(t, int64(2), res.Total)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, acme, res.Rows[0].ID)

	req := listRequest()
	req.Take = 1
	req.Skip = 1
	res = repo.List(ctx, req)
	require.Nil(t, res.Failure())
	assert.Equal(t, int64(2), res.Total)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Beta", *res.Rows[0].Name)

	details, ex := repo.GetDetails(ctx, acme)
	require.True(t, ex.OK())
	require.NotNil(t, details)
	assert.Equal(t, "7701", *details.Inn)
	assert.Equal(t, int64(9), details.UserID)
	assert.Nil(t, details.Typeuser)
	assert.Nil(t, details.Reestrnum)

	details, ex = repo.GetDetails(ctx, 999)
	assert.True(t, ex.OK())
	assert.Nil(t, details)
}

func TestKontragentRepository_UpdateKeepsCreator(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := repository.NewKontragentRepository(db)
	ctx := context.Background()

	id := insertKontragent(t, db, domain.KontragentFields{Name: testutil.Ptr("Acme")}, domain.KontragentTypeAgency)

	ex := repo.Update(ctx, id, &domain.KontragentFields{Name: testutil.Ptr("Acme Travel"), IsOperator: true}, domain.KontragentTypeAgency, 12)
	require.True(t, ex.OK())
	assert.Equal(t, int64(1), ex.RowsAffected)

	var row domain.Kontragent
	require.NoError(t, db.First(&row, id).Error)
	assert.Equal(t, "Acme Travel", *row.Name)
	assert.Equal(t, int64(9), row.UserID)
	assert.Equal(t, int64(12), row.IDUserLastUpdate)
	assert.Equal(t, 1, row.IsOperator)
	assert.Equal(t, domain.TypeuserAgency, *row.Typeuser)
}

func TestKontragentRepository_SetDeleted(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := repository.NewKontragentRepository(db)
	ctx := context.Background()

	id := insertKontragent(t, db, domain.KontragentFields{Name: testutil.Ptr("Acme")}, domain.KontragentTypeLegalEntity)

	require.True(t, repo.SetDeleted(ctx, id, true, 4).OK())
	details, ex := repo.GetDetails(ctx, id)
	require.True(t, ex.OK())
	assert.Nil(t, details)

	req := listRequest()
	req.DeleteStatus = domain.DeleteStatusDeleted
	res := repo.List(ctx, req)
	require.Nil(t, res.Failure())
	assert.Equal(t, int64(1), res.Total)

	require.True(t, repo.SetDeleted(ctx, id, false, 4).OK())
	details, _ = repo.GetDetails(ctx, id)
	require.NotNil(t, details)
	assert.Equal(t, int64(4), details.IDUserLastUpdate)
}

func TestInsertStatement_NonAgencyNeverOperator(t *testing.T) {
	st := repository.InsertStatement(&domain.KontragentFields{IsOperator: true}, domain.KontragentTypeIndividual, 1)

	assert.Equal(t, 0, st.Params["is_operator"])
	assert.Equal(t, 0, st.Params["owner"])
	assert.Equal(t, int64(1), st.Params["user_id"])
	assert.Contains(t, st.SQL, "RETURNING id")
}

func TestUpdateStatement_DoesNotTouchCreator(t *testing.T) {
	st := repository.UpdateStatement(5, &domain.KontragentFields{}, domain.KontragentTypeLegalEntity, 2)

	assert.NotContains(t, st.SQL, "user_id = @user_id")
	assert.NotContains(t, st.SQL, "owner")
	assert.Contains(t, st.SQL, "id_user_last_update = @id_user_last_update")
	assert.Nil(t, st.Params["typeuser"])
}
