package service

import (
	"context"
	"fmt"

	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/mapper"
	"github.com/straye-as/kontragent-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// KontragentService handles the kontragent grid, form load, save and soft delete
type KontragentService struct {
	db          *gorm.DB
	kontragents *repository.KontragentRepository
	operators   *repository.OperatorRepository
	activity    *ActivityLogger
	logger      *zap.Logger
}

// NewKontragentService creates a new kontragent service
func NewKontragentService(
	db *gorm.DB,
	kontragents *repository.KontragentRepository,
	operators *repository.OperatorRepository,
	activity *ActivityLogger,
	logger *zap.Logger,
) *KontragentService {
	return &KontragentService{
		db:          db,
		kontragents: kontragents,
		operators:   operators,
		activity:    activity,
		logger:      logger,
	}
}

// List returns one page of the kontragent grid with the total row count
func (s *KontragentService) List(ctx context.Context, actorID int64, req domain.ListKontragentRequest) domain.Envelope {
	countSt, dataSt := repository.ListStatements(req)
	payload := map[string]interface{}{
		"type":                     int(req.Type),
		"skip":                     req.Skip,
		"take":                     req.Take,
		"search":                   req.Search,
		"filter":                   req.RawFilter,
		"is_delete_status":         string(req.DeleteStatus),
		"sql_count_query_template": countSt.SQL,
		"sql_count_query_full":     countSt.Rendered(),
		"sql_data_query_template":  dataSt.SQL,
		"sql_data_query_full":      dataSt.Rendered(),
	}

	res := s.kontragents.List(ctx, req)
	if f := res.Failure(); f != nil {
		s.logger.Error("Failed to list kontragents",
			zap.String("sql", dataSt.Rendered()),
			zap.Error(f),
		)
		s.activity.Record(ctx, 0, domain.TagGetKontragentListFailed, withError(payload, f), actorID)
		return domain.Fail(domain.MsgKontragentListFailed + f.Detail())
	}

	s.activity.Record(ctx, 0, domain.TagGetKontragentList, payload, actorID)
	total := res.Total
	return domain.Envelope{Success: true, Data: res.Rows, TotalCount: &total}
}

// Get loads a single non-deleted kontragent for the edit form
func (s *KontragentService) Get(ctx context.Context, actorID int64, req domain.GetKontragentRequest) domain.Envelope {
	if err := mapper.Validate(req); err != nil {
		return domain.Fail(domain.MsgKontragentIDRequired)
	}

	details, ex := s.kontragents.GetDetails(ctx, req.ID)
	payload := sqlPayload(ex)
	if !ex.OK() {
		s.logger.Error("Failed to load kontragent",
			zap.Int64("kontragent_id", req.ID),
			zap.Error(ex.Failure),
		)
		s.activity.Record(ctx, req.ID, domain.TagFormLoadFailedDBError, withError(payload, ex.Failure), actorID)
		return domain.Fail(domain.MsgKontragentLoadFailed + ex.Failure.Detail())
	}
	if details == nil {
		s.activity.Record(ctx, req.ID, domain.TagFormLoadFailedNotFound, payload, actorID)
		return domain.Fail(domain.MsgKontragentNotFound)
	}

	payload["data_loaded"] = true
	s.activity.Record(ctx, req.ID, domain.TagFormLoadExisting, payload, actorID)
	return domain.OK(mapper.ToKontragentDetailsDTO(details))
}

// saveOutcome is the result of the statements run inside the save transaction
type saveOutcome struct {
	env domain.Envelope
	// failure is set when the transaction must be rolled back
	failure *database.Failure
}

// Save inserts or updates a kontragent and reconciles its operator profile in one transaction
func (s *KontragentService) Save(ctx context.Context, actorID int64, req domain.SaveKontragentRequest) (env domain.Envelope) {
	if err := mapper.ValidateKontragentIdentity(&req.Fields); err != nil {
		return domain.Fail(domain.MsgNameOrFioRequired)
	}

	journal := s.activity.Journal()
	defer journal.Flush(ctx)

	tx, failure := database.Begin(ctx, s.db)
	if failure != nil {
		return s.transactionFailed(journal, actorID, req, failure)
	}

	defer func() {
		if p := recover(); p != nil {
			database.Rollback(tx)
			env = s.transactionFailed(journal, actorID, req, &database.Failure{
				Kind: database.FailureException,
				Err:  fmt.Errorf("panic: %v", p),
			})
		}
	}()

	out := s.save(ctx, tx, journal, actorID, req)
	if out.failure != nil {
		database.Rollback(tx)
		if out.failure.IsException() {
			return s.transactionFailed(journal, actorID, req, out.failure)
		}
		return out.env
	}

	if failure := database.Commit(tx); failure != nil {
		database.Rollback(tx)
		return s.transactionFailed(journal, actorID, req, failure)
	}
	return out.env
}

func (s *KontragentService) save(ctx context.Context, tx *gorm.DB, journal *Journal, actorID int64, req domain.SaveKontragentRequest) saveOutcome {
	kontragents := s.kontragents.WithTx(tx)

	if req.EditID == 0 {
		id, ex := kontragents.Insert(ctx, &req.Fields, req.Type, actorID)
		payload := sqlPayload(ex)
		payload["data"] = req.Raw
		if !ex.OK() {
			if ex.Failure.IsException() {
				return saveOutcome{failure: ex.Failure}
			}
			journal.Record(0, domain.TagSaveFailedInsertMainExecute, withError(payload, ex.Failure), actorID)
			return saveOutcome{
				env:     domain.Fail(domain.MsgKontragentInsertFailed + ex.Failure.Detail()),
				failure: ex.Failure,
			}
		}
		journal.Record(id, domain.TagSaveSuccessInsert, payload, actorID)

		env := domain.Envelope{Success: true, Message: domain.MsgKontragentInserted, NewID: &id}
		return s.reconcileOperator(ctx, tx, journal, actorID, id, req, false, env)
	}

	id := req.EditID
	ex := kontragents.Update(ctx, id, &req.Fields, req.Type, actorID)
	payload := sqlPayload(ex)
	payload["data"] = req.Raw
	if !ex.OK() {
		if ex.Failure.IsException() {
			return saveOutcome{failure: ex.Failure}
		}
		journal.Record(id, domain.TagSaveFailedUpdateMainExecute, withError(payload, ex.Failure), actorID)
		return saveOutcome{
			env:     domain.Fail(domain.MsgKontragentUpdateFailed + ex.Failure.Detail()),
			failure: ex.Failure,
		}
	}
	journal.Record(id, domain.TagSaveSuccessUpdate, payload, actorID)

	exists, check := s.operators.WithTx(tx).Exists(ctx, id)
	if !check.OK() {
		return saveOutcome{failure: &database.Failure{Kind: database.FailureException, Err: check.Failure.Err}}
	}

	env := domain.Envelope{Success: true, Message: domain.MsgKontragentUpdated, NewID: &id}
	return s.reconcileOperator(ctx, tx, journal, actorID, id, req, exists, env)
}

// reconcileOperator keeps the operator profile in step with the kontragent:
// it exists only for agencies flagged as operators
func (s *KontragentService) reconcileOperator(
	ctx context.Context,
	tx *gorm.DB,
	journal *Journal,
	actorID, id int64,
	req domain.SaveKontragentRequest,
	exists bool,
	env domain.Envelope,
) saveOutcome {
	operators := s.operators.WithTx(tx)
	wanted := req.Type.OperatorFlag(req.Fields.IsOperator) == 1

	var (
		ex                 repository.Executed
		successTag, failed domain.ActionTag
		failMessage        string
	)
	switch {
	case wanted && exists:
		ex = operators.Update(ctx, id, &req.Operator)
		successTag, failed, failMessage = domain.TagOperatorUpdateSuccess, domain.TagOperatorUpdateFailedExecute, domain.MsgOperatorSaveFailed
	case wanted:
		ex = operators.Insert(ctx, id, &req.Operator)
		successTag, failed, failMessage = domain.TagOperatorInsertSuccess, domain.TagOperatorInsertFailedExecute, domain.MsgOperatorSaveFailed
	case exists:
		ex = operators.Delete(ctx, id)
		successTag, failed, failMessage = domain.TagOperatorDeleteSuccess, domain.TagOperatorDeleteFailedExecute, domain.MsgOperatorDeleteFailed
	default:
		return saveOutcome{env: env}
	}

	payload := sqlPayload(ex)
	if !ex.OK() {
		if ex.Failure.IsException() {
			return saveOutcome{failure: ex.Failure}
		}
		journal.Record(id, failed, withError(payload, ex.Failure), actorID)
		env.Success = false
		env.NewID = nil
		env.Message += failMessage + ex.Failure.Detail()
		return saveOutcome{env: env, failure: ex.Failure}
	}

	journal.Record(id, successTag, payload, actorID)
	return saveOutcome{env: env}
}

func (s *KontragentService) transactionFailed(journal *Journal, actorID int64, req domain.SaveKontragentRequest, f *database.Failure) domain.Envelope {
	s.logger.Error("Kontragent save transaction failed",
		zap.Int64("kontragent_id", req.EditID),
		zap.Error(f),
	)
	journal.Record(req.EditID, domain.TagSaveFailedTransaction, map[string]interface{}{
		"data":  req.Raw,
		"error": f.Detail(),
	}, actorID)
	return domain.Fail(domain.MsgSaveTransactionFailed + f.Detail())
}

// MarkDeleted soft-deletes a kontragent
func (s *KontragentService) MarkDeleted(ctx context.Context, actorID int64, req domain.KontragentIDRequest) domain.Envelope {
	return s.setDeleted(ctx, actorID, req, true)
}

// Restore clears the soft-delete flag of a kontragent
func (s *KontragentService) Restore(ctx context.Context, actorID int64, req domain.KontragentIDRequest) domain.Envelope {
	return s.setDeleted(ctx, actorID, req, false)
}

func (s *KontragentService) setDeleted(ctx context.Context, actorID int64, req domain.KontragentIDRequest, deleted bool) domain.Envelope {
	if err := mapper.Validate(req); err != nil {
		return domain.Fail(domain.MsgKontragentIDRequired)
	}

	success, failed, dbError := domain.TagRestoreSuccess, domain.TagRestoreFailed, domain.TagRestoreDBError
	okMessage, failMessage := domain.MsgRestored, domain.MsgRestoreFailed
	if deleted {
		success, failed, dbError = domain.TagSoftDeleteSuccess, domain.TagSoftDeleteFailed, domain.TagSoftDeleteDBError
		okMessage, failMessage = domain.MsgSoftDeleted, domain.MsgSoftDeleteFailed
	}

	ex := s.kontragents.SetDeleted(ctx, req.ID, deleted, actorID)
	payload := sqlPayload(ex)
	if !ex.OK() {
		s.logger.Error("Failed to change kontragent delete flag",
			zap.Int64("kontragent_id", req.ID),
			zap.Bool("deleted", deleted),
			zap.Error(ex.Failure),
		)
		s.activity.Record(ctx, req.ID, failureTag(ex.Failure, failed, dbError), withError(payload, ex.Failure), actorID)
		return domain.Fail(failMessage + ex.Failure.Detail())
	}

	s.activity.Record(ctx, req.ID, success, payload, actorID)
	return domain.Envelope{Success: true, Message: okMessage}
}
