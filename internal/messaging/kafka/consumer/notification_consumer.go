package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"teampulse/internal/events"
	"teampulse/internal/notification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const uniqueViolationCode = "23505"

// NotificationConsumer materializes notification rows from the
// notification-requested topic.
type NotificationConsumer struct {
	reader *kafkago.Reader
	repo   notification.Repository
	logger *zap.Logger
}

func NewNotificationConsumer(broker, groupID string, repo notification.Repository, logger ...*zap.Logger) *NotificationConsumer {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.consumer.notification")
	} else {
		l = zap.L().Named("kafka.consumer.notification")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupID: groupID,
		Topic:   events.NotificationRequestedTopic,
	})

	return &NotificationConsumer{reader: reader, repo: repo, logger: l}
}

// Run blocks until the context is cancelled. Messages are committed only
// after the notification row is persisted; duplicate deliveries are
// absorbed through the deterministic row id.
func (c *NotificationConsumer) Run(ctx context.Context) error {
	c.logger.Info("notification consumer started", zap.String("topic", events.NotificationRequestedTopic))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Info("notification consumer stopped")
				return nil
			}
			return err
		}

		if err := c.handle(ctx, msg); err != nil {
			c.logger.Error("handle notification message failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (c *NotificationConsumer) Close() error {
	return c.reader.Close()
}

func (c *NotificationConsumer) handle(ctx context.Context, msg kafkago.Message) error {
	var payload events.NotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		c.logger.Warn("dropping undecodable message", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}

	recipient, err := uuid.Parse(payload.RecipientID)
	if err != nil {
		c.logger.Warn("dropping message with invalid recipient",
			zap.String("recipient_id", payload.RecipientID),
		)
		return nil
	}

	n := &notification.Notification{
		ID:      rowID(msg),
		UserID:  recipient,
		Type:    payload.Type,
		Title:   payload.Title,
		Message: payload.Message,
	}

	if err := c.repo.Create(ctx, n); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			c.logger.Debug("duplicate delivery ignored", zap.String("notification_id", n.ID.String()))
			return nil
		}
		return err
	}

	c.logger.Info("notification materialized",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient_id", payload.RecipientID),
		zap.String("event_type", payload.EventType),
	)
	return nil
}

// rowID derives a stable notification id from the originating outbox row,
// so redelivered messages insert the same primary key.
func rowID(msg kafkago.Message) uuid.UUID {
	for _, h := range msg.Headers {
		if h.Key == "outbox_id" && len(h.Value) > 0 {
			return uuid.NewSHA1(uuid.NameSpaceOID, h.Value)
		}
	}
	return uuid.New()
}
