package service

import (
	"context"
	"fmt"
	"time"

	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/mapper"
	"go.uber.org/zap"
)

// HandlerFunc serves one action with input already normalized at the boundary
type HandlerFunc func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope

// Services groups the handlers reachable through the dispatcher
type Services struct {
	Kontragents *KontragentService
	Contracts   *ContractService
	Lookups     *LookupService
	Notify      *NotifyService
}

// Dispatcher maps action names to handlers
type Dispatcher struct {
	handlers map[domain.Action]HandlerFunc
	logger   *zap.Logger
	now      func() time.Time
}

// NewDispatcher builds the action table over the given services
func NewDispatcher(svc Services, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{logger: logger, now: time.Now}
	d.handlers = map[domain.Action]HandlerFunc{
		domain.ActionGetKontragentList: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Kontragents.List(ctx, actorID, mapper.ToListKontragentRequest(in))
		},
		domain.ActionGetKontragentData: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Kontragents.Get(ctx, actorID, mapper.ToGetKontragentRequest(in))
		},
		domain.ActionSaveKontragent: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Kontragents.Save(ctx, actorID, mapper.ToSaveKontragentRequest(in))
		},
		domain.ActionGetContracts: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Contracts.List(ctx, actorID, mapper.ToListContractsRequest(in))
		},
		domain.ActionSaveContract: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Contracts.Save(ctx, actorID, mapper.ToSaveContractRequest(in, d.now()))
		},
		domain.ActionDeleteContract: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Contracts.Delete(ctx, actorID, mapper.ToDeleteContractRequest(in))
		},
		domain.ActionGetRegions: func(ctx context.Context, _ int64, _ mapper.Params) domain.Envelope {
			return svc.Lookups.Regions(ctx)
		},
		domain.ActionGetCitiesByRegion: func(ctx context.Context, _ int64, in mapper.Params) domain.Envelope {
			return svc.Lookups.CitiesByRegion(ctx, mapper.ToCitiesByRegionRequest(in))
		},
		domain.ActionMarkKontragentDeleted: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Kontragents.MarkDeleted(ctx, actorID, mapper.ToKontragentIDRequest(in))
		},
		domain.ActionRestoreKontragent: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Kontragents.Restore(ctx, actorID, mapper.ToKontragentIDRequest(in))
		},
		domain.ActionLogClientNotify: func(ctx context.Context, actorID int64, in mapper.Params) domain.Envelope {
			return svc.Notify.ClientNotify(ctx, actorID, mapper.ToClientNotifyRequest(in))
		},
	}
	return d
}

// WithClock replaces the clock used for date defaults
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Actions returns the number of registered actions
func (d *Dispatcher) Actions() int {
	return len(d.handlers)
}

// Dispatch runs the handler named by the "action" key of the input
func (d *Dispatcher) Dispatch(ctx context.Context, actorID int64, in mapper.Params) (env domain.Envelope) {
	action := in.String("action")
	handler, ok := d.handlers[domain.Action(action)]
	if !ok {
		return domain.Fail(domain.MsgUnknownAction + action)
	}

	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("Action handler panicked",
				zap.String("action", action),
				zap.Int64("actor_id", actorID),
				zap.String("panic", fmt.Sprint(p)),
				zap.Stack("stack"),
			)
			env = domain.Fail(domain.MsgInternalError)
		}
	}()

	return handler(ctx, actorID, in)
}
