package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/mapper"
	"github.com/straye-as/kontragent-api/internal/repository"
	"github.com/straye-as/kontragent-api/internal/service"
	"github.com/straye-as/kontragent-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testActorID int64 = 7

type fixture struct {
	db         *gorm.DB
	dispatcher *service.Dispatcher
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return newFixtureWithLogger(t, zap.NewNop())
}

func newFixtureWithLogger(t *testing.T, logger *zap.Logger) fixture {
	t.Helper()

	db := testutil.SetupSQLiteDB(t)
	activity := service.NewActivityLogger(repository.NewActivityLogRepository(db), logger)

	svc := service.Services{
		Kontragents: service.NewKontragentService(
			db,
			repository.NewKontragentRepository(db),
			repository.NewOperatorRepository(db),
			activity,
			logger,
		),
		Contracts: service.NewContractService(repository.NewContractRepository(db), activity, logger),
		Lookups:   service.NewLookupService(repository.NewLookupRepository(db), nil, logger),
		Notify:    service.NewNotifyService(activity),
	}

	dispatcher := service.NewDispatcher(svc, logger).WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return fixture{db: db, dispatcher: dispatcher}
}

func (f fixture) call(params mapper.Params) domain.Envelope {
	return f.dispatcher.Dispatch(context.Background(), testActorID, params)
}

// create saves a new kontragent and returns its id
func (f fixture) create(t *testing.T, params mapper.Params) int64 {
	t.Helper()

	params["action"] = string(domain.ActionSaveKontragent)
	env := f.call(params)
	require.True(t, env.Success, env.Message)
	require.NotNil(t, env.NewID)
	return *env.NewID
}

func (f fixture) tags(t *testing.T) []string {
	t.Helper()
	return testutil.LogTags(t, f.db)
}
