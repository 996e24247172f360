package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/mapper"
	"github.com/straye-as/kontragent-api/internal/repository"
	"go.uber.org/zap"
)

// ContractService handles contracts between kontragents and companies
type ContractService struct {
	contracts *repository.ContractRepository
	activity  *ActivityLogger
	logger    *zap.Logger
}

// NewContractService creates a new contract service
func NewContractService(contracts *repository.ContractRepository, activity *ActivityLogger, logger *zap.Logger) *ContractService {
	return &ContractService{
		contracts: contracts,
		activity:  activity,
		logger:    logger,
	}
}

// List returns the contracts of a kontragent with a company, newest first
func (s *ContractService) List(ctx context.Context, actorID int64, req domain.ListContractsRequest) domain.Envelope {
	if err := mapper.Validate(req); err != nil {
		return domain.Fail(domain.MsgContractOwnerRequired)
	}

	rows, ex := s.contracts.List(ctx, req.KontragentID, req.CompanyID)
	payload := sqlPayload(ex)
	payload["company_id"] = req.CompanyID
	if !ex.OK() {
		s.logger.Error("Failed to list contracts",
			zap.Int64("kontragent_id", req.KontragentID),
			zap.Int64("company_id", req.CompanyID),
			zap.Error(ex.Failure),
		)
		s.activity.Record(ctx, req.KontragentID, domain.TagGetContractsFailed, withError(payload, ex.Failure), actorID)
		return domain.Fail(domain.MsgContractListFailed + ex.Failure.Detail())
	}

	payload["count"] = len(rows)
	s.activity.Record(ctx, req.KontragentID, domain.TagGetContracts, payload, actorID)
	return domain.OK(mapper.ToContractRows(rows))
}

// Save creates a contract with the next sequence number of its company and year, or updates one
func (s *ContractService) Save(ctx context.Context, actorID int64, req domain.SaveContractRequest) domain.Envelope {
	if err := mapper.Validate(req); err != nil {
		return domain.Fail(domain.MsgContractOwnerRequired)
	}

	if req.ID != 0 {
		ex := s.contracts.Update(ctx, req)
		payload := sqlPayload(ex)
		payload["contract_id"] = req.ID
		if !ex.OK() {
			return s.saveFailed(ctx, actorID, req, ex, payload)
		}
		s.activity.Record(ctx, req.KontragentID, domain.TagContractUpdateSuccess, payload, actorID)
		id := req.ID
		return domain.Envelope{Success: true, Message: domain.MsgContractUpdated, NewID: &id}
	}

	next, seq := s.contracts.NextNumber(ctx, req.CompanyID, req.Year)
	if !seq.OK() {
		return s.saveFailed(ctx, actorID, req, seq, sqlPayload(seq))
	}
	num := strconv.FormatInt(next, 10)

	id, ex := s.contracts.Insert(ctx, req, num)
	payload := sqlPayload(ex)
	payload["num"] = num
	payload["sequence_query"] = seq.Statement.Rendered()
	if !ex.OK() {
		return s.saveFailed(ctx, actorID, req, ex, payload)
	}

	payload["contract_id"] = id
	s.activity.Record(ctx, req.KontragentID, domain.TagContractInsertSuccess, payload, actorID)
	return domain.Envelope{
		Success: true,
		Message: fmt.Sprintf(domain.MsgContractInserted, num),
		NewID:   &id,
	}
}

func (s *ContractService) saveFailed(ctx context.Context, actorID int64, req domain.SaveContractRequest, ex repository.Executed, payload map[string]interface{}) domain.Envelope {
	s.logger.Error("Failed to save contract",
		zap.Int64("contract_id", req.ID),
		zap.Int64("kontragent_id", req.KontragentID),
		zap.String("sql", ex.Statement.Rendered()),
		zap.Error(ex.Failure),
	)
	tag := failureTag(ex.Failure, domain.TagContractSaveFailedExecute, domain.TagContractSaveFailedDBError)
	s.activity.Record(ctx, req.KontragentID, tag, withError(payload, ex.Failure), actorID)
	return domain.Fail(domain.MsgContractSaveFailed + ex.Failure.Detail())
}

// Delete removes a contract owned by the kontragent
func (s *ContractService) Delete(ctx context.Context, actorID int64, req domain.DeleteContractRequest) domain.Envelope {
	if err := mapper.Validate(req); err != nil {
		return domain.Fail(domain.MsgContractDeleteIDRequired)
	}

	ex := s.contracts.Delete(ctx, req.ID, req.KontragentID)
	payload := sqlPayload(ex)
	payload["contract_id"] = req.ID
	if !ex.OK() {
		s.logger.Error("Failed to delete contract",
			zap.Int64("contract_id", req.ID),
			zap.Int64("kontragent_id", req.KontragentID),
			zap.Error(ex.Failure),
		)
		tag := failureTag(ex.Failure, domain.TagContractDeleteFailedExecute, domain.TagContractDeleteDBError)
		s.activity.Record(ctx, req.KontragentID, tag, withError(payload, ex.Failure), actorID)
		return domain.Fail(domain.MsgContractDeleteFailed + ex.Failure.Detail())
	}

	payload["rows_affected"] = ex.RowsAffected
	s.activity.Record(ctx, req.KontragentID, domain.TagContractDeleteSuccess, payload, actorID)
	return domain.Envelope{Success: true, Message: domain.MsgContractDeleted}
}
