package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"teampulse/internal/events"
	leaveerrors "teampulse/internal/leave/errors"
	"teampulse/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var titleCaser = cases.Title(language.English)

type Service interface {
	Create(ctx context.Context, userID string, req CreateLeaveRequest) (*LeaveResponse, error)
	ListAll(ctx context.Context) ([]LeaveResponse, error)
	ListMine(ctx context.Context, userID string) ([]LeaveResponse, error)
	Decide(ctx context.Context, leaveID string, req DecideLeaveRequest) (*LeaveResponse, error)
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
		l = zap.L().Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

const dateLayout = "2006-01-02"

func (s *service) Create(ctx context.Context, userID string, req CreateLeaveRequest) (*LeaveResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidUserID
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return nil, leaveerrors.ErrInvalidDateRange
	}

	l := &LeaveRequest{
		ID:        uuid.New(),
		UserID:    uid,
		LeaveType: req.LeaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave request failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("leave request created",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID),
		zap.String("leave_type", l.LeaveType),
	)

	resp := toLeaveResponse(l)
	return &resp, nil
}

func (s *service) ListAll(ctx context.Context) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return nil, err
	}

	out := make([]LeaveResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLeaveWithUserResponse(row))
	}
	return out, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, leaveerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list own leave requests failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	out := make([]LeaveResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLeaveResponse(&row))
	}
	return out, nil
}

// Decide flips a pending request to approved or rejected and queues the
// requester's notification in the same transaction.
func (s *service) Decide(ctx context.Context, leaveID string, req DecideLeaveRequest) (*LeaveResponse, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	l, err := txRepo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	if l.Status != StatusPending {
		return nil, leaveerrors.ErrAlreadyDecided
	}

	l.Status = req.Status
	l.ManagerComment = req.Comment
	l.UpdatedAt = time.Now()

	if err := txRepo.Update(ctx, l); err != nil {
		s.logger.Error("update leave request failed", zap.String("leave_id", leaveID), zap.Error(err))
		return nil, err
	}

	if err := s.enqueueDecisionNotification(ctx, tx, l); err != nil {
		s.logger.Error("enqueue leave notification failed", zap.String("leave_id", leaveID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("leave_id", leaveID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("leave request decided",
		zap.String("leave_id", leaveID),
		zap.String("status", l.Status),
	)

	resp := toLeaveResponse(l)
	return &resp, nil
}

func (s *service) enqueueDecisionNotification(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	notifType := "success"
	verb := "approved"
	if l.Status == StatusRejected {
		notifType = "warning"
		verb = "rejected"
	}

	payload, err := json.Marshal(events.NotificationRequestedEvent{
		EventType:   events.EventTypeLeaveDecided,
		RecipientID: l.UserID.String(),
		Type:        notifType,
		Title:       fmt.Sprintf("Leave Request %s", titleCaser.String(verb)),
		Message: fmt.Sprintf("Your %s leave from %s to %s has been %s.",
			l.LeaveType,
			l.StartDate.Format(dateLayout),
			l.EndDate.Format(dateLayout),
			verb,
		),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     events.EventTypeLeaveDecided,
		Topic:         events.NotificationRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func toLeaveResponse(l *LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:             l.ID.String(),
		UserID:         l.UserID.String(),
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format(dateLayout),
		EndDate:        l.EndDate.Format(dateLayout),
		Reason:         l.Reason,
		Status:         l.Status,
		ManagerComment: l.ManagerComment,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt.Format(time.RFC3339),
	}
}

func toLeaveWithUserResponse(row LeaveWithUser) LeaveResponse {
	return LeaveResponse{
		ID:             row.ID.String(),
		UserID:         row.UserID.String(),
		UserName:       row.UserName,
		UserTeam:       row.UserTeam,
		LeaveType:      row.LeaveType,
		StartDate:      row.StartDate.Format(dateLayout),
		EndDate:        row.EndDate.Format(dateLayout),
		Reason:         row.Reason,
		Status:         row.Status,
		ManagerComment: row.ManagerComment,
		CreatedAt:      row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      row.UpdatedAt.Format(time.RFC3339),
	}
}
