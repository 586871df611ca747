package notification

import (
	"context"
	"time"

	notificationerrors "teampulse/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	ListMine(ctx context.Context, userID string) ([]NotificationResponse, error)
	Create(ctx context.Context, req CreateNotificationRequest) (*NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.L().Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListMine(ctx context.Context, userID string) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, notificationerrors.ErrInvalidUserID
	}

	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	out := make([]NotificationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toNotificationResponse(&row))
	}
	return out, nil
}

// Create accepts any authenticated caller as sender; the recipient just has
// to exist.
func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (*NotificationResponse, error) {
	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, notificationerrors.ErrInvalidUserID
	}

	exists, err := s.repo.RecipientExists(ctx, req.UserID)
	if err != nil {
		s.logger.Error("recipient lookup failed", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, notificationerrors.ErrRecipientNotFound
	}

	n := &Notification{
		ID:      uuid.New(),
		UserID:  uid,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("type", n.Type),
	)

	resp := toNotificationResponse(n)
	return &resp, nil
}

func (s *service) MarkRead(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return notificationerrors.ErrInvalidUserID
	}

	affected, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		s.logger.Error("mark read failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return 0, notificationerrors.ErrInvalidUserID
	}

	affected, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("mark all read failed", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return affected, nil
}

func (s *service) Delete(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return notificationerrors.ErrInvalidUserID
	}

	affected, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error("delete notification failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func toNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
