package service

import (
	"context"

	"github.com/straye-as/kontragent-api/internal/domain"
)

// NotifyService relays client-side diagnostics into the activity log
type NotifyService struct {
	activity *ActivityLogger
}

// NewNotifyService creates a new notify service
func NewNotifyService(activity *ActivityLogger) *NotifyService {
	return &NotifyService{activity: activity}
}

// ClientNotify records a client message and always reports success
func (s *NotifyService) ClientNotify(ctx context.Context, actorID int64, req domain.ClientNotifyRequest) domain.Envelope {
	s.activity.Record(ctx, req.KontragentID, domain.TagClientNotify, map[string]interface{}{
		"client_message": req.Message,
		"client_type":    req.Type,
		"client_url":     req.URL,
	}, actorID)
	return domain.Envelope{Success: true, Message: domain.MsgClientNotifyLogged}
}
