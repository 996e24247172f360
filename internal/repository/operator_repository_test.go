package repository_test

import (
	"context"
	"testing"

	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/repository"
	"github.com/straye-as/kontragent-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorRepository_Lifecycle(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := repository.NewOperatorRepository(db)
	ctx := context.Background()

	id := insertKontragent(t, db, domain.KontragentFields{Name: testutil.Ptr("Acme")}, domain.KontragentTypeAgency)

	exists, ex := repo.Exists(ctx, id)
	require.True(t, ex.OK())
	assert.False(t, exists)

	require.True(t, repo.Insert(ctx, id, &domain.OperatorFields{Reestrnum: "RTO-1", AmountFinancialSupport: 500}).OK())
	exists, _ = repo.Exists(ctx, id)
	assert.True(t, exists)

	ex = repo.Update(ctx, id, &domain.OperatorFields{Reestrnum: "RTO-2", Website: "acme.example"})
	require.True(t, ex.OK())
	assert.Equal(t, int64(1), ex.RowsAffected)

	details, _ := repository.NewKontragentRepository(db).GetDetails(ctx, id)
	require.NotNil(t, details)
	require.NotNil(t, details.Reestrnum)
	assert.Equal(t, "RTO-2", *details.Reestrnum)
	assert.Equal(t, "acme.example", *details.Website)
	assert.Equal(t, 0, *details.AmountFinancialSupport)

	require.True(t, repo.Delete(ctx, id).OK())
	exists, _ = repo.Exists(ctx, id)
	assert.False(t, exists)
}

func TestOperatorRepository_DuplicateInsertIsExecuteFailure(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := repository.NewOperatorRepository(db)
	ctx := context.Background()

	require.True(t, repo.Insert(ctx, 1, &domain.OperatorFields{}).OK())
	ex := repo.Insert(ctx, 1, &domain.OperatorFields{})

	require.False(t, ex.OK())
	assert.False(t, ex.Failure.IsException())
	assert.Contains(t, ex.Statement.Rendered(), "INSERT INTO aa_kontragent_operator")
}
