package service

import (
	"context"
	"encoding/json"

	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/repository"
	"go.uber.org/zap"
)

// ActivityLogger appends entries to the kontragent activity log.
// Write failures are logged and swallowed; they never change the outcome of the caller.
type ActivityLogger struct {
	repo   *repository.ActivityLogRepository
	logger *zap.Logger
}

// NewActivityLogger creates a new activity logger
func NewActivityLogger(repo *repository.ActivityLogRepository, logger *zap.Logger) *ActivityLogger {
	return &ActivityLogger{
		repo:   repo,
		logger: logger,
	}
}

// Record serializes payload and appends one entry
func (a *ActivityLogger) Record(ctx context.Context, kontragentID int64, tag domain.ActionTag, payload interface{}, actorID int64) {
	data, err := json.Marshal(payload)
	if err != nil {
		a.logger.Error("Failed to encode activity log payload",
			zap.Int64("kontragent_id", kontragentID),
			zap.String("action_type", string(tag)),
			zap.Error(err),
		)
		data = []byte("null")
	}

	entry := &domain.KontragentLog{
		KontragentID: kontragentID,
		ActionType:   string(tag),
		LogDataJSON:  string(data),
		UserID:       actorID,
	}

	// The entry outlives a cancelled request
	if err := a.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		a.logger.Error("Failed to write kontragent activity log",
			zap.Int64("kontragent_id", kontragentID),
			zap.String("action_type", string(tag)),
			zap.Int64("user_id", actorID),
			zap.Error(err),
		)
	}
}

// Journal collects entries during a transaction and writes them once it has ended,
// outside of it, so a rollback never retracts them
func (a *ActivityLogger) Journal() *Journal {
	return &Journal{activity: a}
}

type journalEntry struct {
	kontragentID int64
	tag          domain.ActionTag
	payload      interface{}
	actorID      int64
}

// Journal is a buffer of pending activity log entries
type Journal struct {
	activity *ActivityLogger
	entries  []journalEntry
}

// Record buffers one entry
func (j *Journal) Record(kontragentID int64, tag domain.ActionTag, payload interface{}, actorID int64) {
	j.entries = append(j.entries, journalEntry{
		kontragentID: kontragentID,
		tag:          tag,
		payload:      payload,
		actorID:      actorID,
	})
}

// Tags returns the buffered tags in order
func (j *Journal) Tags() []domain.ActionTag {
	tags := make([]domain.ActionTag, len(j.entries))
	for i, e := range j.entries {
		tags[i] = e.tag
	}
	return tags
}

// Flush writes every buffered entry in order and empties the journal
func (j *Journal) Flush(ctx context.Context) {
	for _, e := range j.entries {
		j.activity.Record(ctx, e.kontragentID, e.tag, e.payload, e.actorID)
	}
	j.entries = nil
}
