package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	eventerrors "teampulse/internal/event/errors"
	"teampulse/internal/events"
	"teampulse/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, creatorID string, req CreateEventRequest) (*EventResponse, error)
	ListAll(ctx context.Context) ([]EventResponse, error)
	SubmitRsvp(ctx context.Context, eventID, userID string, req SubmitRsvpRequest) (*RsvpResponse, error)
	ListRsvps(ctx context.Context, eventID string) ([]RsvpResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.L().Named("event.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

// Create inserts the event and queues the creator's confirmation
// notification in the same transaction. Role enforcement lives in the
// route middleware.
func (s *service) Create(ctx context.Context, creatorID string, req CreateEventRequest) (*EventResponse, error) {
	creator, err := uuid.Parse(creatorID)
	if err != nil {
		return nil, eventerrors.ErrInvalidUserID
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, eventerrors.ErrInvalidTimeFormat
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, eventerrors.ErrInvalidTimeFormat
	}
	if !end.After(start) {
		return nil, eventerrors.ErrInvalidTimeRange
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = VisibilityTeam
	}

	e := &Event{
		ID:           uuid.New(),
		Title:        req.Title,
		EventType:    req.EventType,
		StartTime:    start,
		EndTime:      end,
		Description:  req.Description,
		CreatedBy:    creator,
		Visibility:   visibility,
		RsvpRequired: req.RsvpRequired,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
		s.logger.Error("create event failed", zap.String("creator_id", creatorID), zap.Error(err))
		return nil, err
	}

	if err := s.enqueueCreatedNotification(ctx, tx, e); err != nil {
		s.logger.Error("enqueue event notification failed", zap.String("event_id", e.ID.String()), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("event_id", e.ID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("event created",
		zap.String("event_id", e.ID.String()),
		zap.String("creator_id", creatorID),
		zap.String("event_type", e.EventType),
	)

	resp := toEventResponse(e)
	return &resp, nil
}

func (s *service) ListAll(ctx context.Context) ([]EventResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list events failed", zap.Error(err))
		return nil, err
	}

	out := make([]EventResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEventWithCreatorResponse(row))
	}
	return out, nil
}

func (s *service) SubmitRsvp(ctx context.Context, eventID, userID string, req SubmitRsvpRequest) (*RsvpResponse, error) {
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, eventerrors.ErrInvalidEventID
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, eventerrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventerrors.ErrEventNotFound
		}
		return nil, err
	}

	rsvp := &EventRsvp{
		ID:          uuid.New(),
		EventID:     eid,
		UserID:      uid,
		Response:    req.Response,
		RespondedAt: time.Now().UTC(),
	}

	if err := s.repo.UpsertRsvp(ctx, rsvp); err != nil {
		s.logger.Error("upsert rsvp failed",
			zap.String("event_id", eventID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("rsvp recorded",
		zap.String("event_id", eventID),
		zap.String("user_id", userID),
		zap.String("response", req.Response),
	)

	resp := toRsvpResponse(rsvp, "")
	return &resp, nil
}

func (s *service) ListRsvps(ctx context.Context, eventID string) ([]RsvpResponse, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, eventerrors.ErrInvalidEventID
	}

	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventerrors.ErrEventNotFound
		}
		return nil, err
	}

	rows, err := s.repo.FindRsvps(ctx, eventID)
	if err != nil {
		s.logger.Error("list rsvps failed", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	out := make([]RsvpResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, RsvpResponse{
			ID:          row.ID.String(),
			EventID:     row.EventID.String(),
			UserID:      row.UserID.String(),
			UserName:    row.UserName,
			Response:    row.Response,
			RespondedAt: row.RespondedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *service) enqueueCreatedNotification(ctx context.Context, tx *sql.Tx, e *Event) error {
	payload, err := json.Marshal(events.NotificationRequestedEvent{
		EventType:   events.EventTypeEventCreated,
		RecipientID: e.CreatedBy.String(),
		Type:        "info",
		Title:       "Event Created",
		Message: fmt.Sprintf("%q is scheduled for %s.",
			e.Title,
			e.StartTime.Format("Jan 2, 2006 15:04"),
		),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "event",
		AggregateID:   e.ID.String(),
		EventType:     events.EventTypeEventCreated,
		Topic:         events.NotificationRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func toEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:           e.ID.String(),
		Title:        e.Title,
		EventType:    e.EventType,
		StartTime:    e.StartTime.Format(time.RFC3339),
		EndTime:      e.EndTime.Format(time.RFC3339),
		Description:  e.Description,
		CreatedBy:    e.CreatedBy.String(),
		Visibility:   e.Visibility,
		RsvpRequired: e.RsvpRequired,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}

func toEventWithCreatorResponse(row EventWithCreator) EventResponse {
	return EventResponse{
		ID:           row.ID.String(),
		Title:        row.Title,
		EventType:    row.EventType,
		StartTime:    row.StartTime.Format(time.RFC3339),
		EndTime:      row.EndTime.Format(time.RFC3339),
		Description:  row.Description,
		CreatedBy:    row.CreatedBy.String(),
		CreatorName:  row.CreatorName,
		Visibility:   row.Visibility,
		RsvpRequired: row.RsvpRequired,
		CreatedAt:    row.CreatedAt.Format(time.RFC3339),
	}
}

func toRsvpResponse(r *EventRsvp, userName string) RsvpResponse {
	return RsvpResponse{
		ID:          r.ID.String(),
		EventID:     r.EventID.String(),
		UserID:      r.UserID.String(),
		UserName:    userName,
		Response:    r.Response,
		RespondedAt: r.RespondedAt.Format(time.RFC3339),
	}
}
