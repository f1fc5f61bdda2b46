package notification

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/contracts"
	"doccare-service/internal/app/models"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitMQSink publishes notifications to a durable queue and waits for the
// broker confirm. Redelivered events with the same dedup key are dropped for
// the configured window.
type RabbitMQSink struct {
	ch             *amqp.Channel
	confirms       chan amqp.Confirmation
	mu             sync.Mutex
	redis          contracts.RedisRepository
	Log            *zap.Logger
	QueueName      string
	DedupTTL       time.Duration
	PublishTimeout time.Duration
}

func NewRabbitMQSink(conn *amqp.Connection, redisRepo contracts.RedisRepository, logger *zap.Logger, internalConfig *config.InternalConfig) (*RabbitMQSink, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	queueName := internalConfig.Notification.QueueName
	_, err = ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &RabbitMQSink{
		ch:             ch,
		confirms:       ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		redis:          redisRepo,
		Log:            logger,
		QueueName:      queueName,
		DedupTTL:       time.Duration(internalConfig.Notification.DedupTTLInHours) * time.Hour,
		PublishTimeout: time.Duration(internalConfig.Notification.PublishTimeoutInSeconds) * time.Second,
	}, nil
}

func (s *RabbitMQSink) Notify(ctx context.Context, notification models.Notification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("RabbitMQSink.Notify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRecipientIDKey, notification.RecipientID),
		zap.String(constvars.LoggingNotificationTypeKey, string(notification.Type)),
	)

	dedupKey := ""
	if notification.DedupKey != "" && s.redis != nil {
		dedupKey = fmt.Sprintf(constvars.RedisKeyNotificationDedupFormat, notification.DedupKey)
		fresh, err := s.redis.TrySetNX(ctx, dedupKey, notification.ID, s.DedupTTL)
		if err != nil {
			// Dedup is best effort; a duplicate is preferable to a lost notification.
			s.Log.Warn("RabbitMQSink.Notify dedup check failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, dedupKey),
				zap.Error(err),
			)
			dedupKey = ""
		} else if !fresh {
			s.Log.Info("RabbitMQSink.Notify skipped duplicate",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, dedupKey),
			)
			return nil
		}
	}

	err := s.publish(ctx, notification)
	if err != nil {
		if dedupKey != "" {
			if delErr := s.redis.Delete(context.Background(), dedupKey); delErr != nil {
				s.Log.Warn("RabbitMQSink.Notify failed to release dedup key",
					zap.String(constvars.LoggingRedisKey, dedupKey),
					zap.Error(delErr),
				)
			}
		}
		s.Log.Error("RabbitMQSink.Notify error publishing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.QueueName),
			zap.Error(err),
		)
		return err
	}

	s.Log.Info("RabbitMQSink.Notify succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.QueueName),
	)
	return nil
}

func (s *RabbitMQSink) publish(ctx context.Context, notification models.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, s.PublishTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    notification.ID,
		Timestamp:    notification.CreatedAt,
		Type:         string(notification.Type),
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	seq := s.ch.GetNextPublishSeqNo()
	if err := s.ch.PublishWithContext(publishCtx, "", s.QueueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.QueueName)
	}
	if err := awaitConfirm(publishCtx, s.confirms, seq); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.QueueName)
	}
	return nil
}

var (
	errConfirmChannelClosed = errors.New("channel closed")
	errMessageNotConfirmed  = errors.New("message not confirmed")
)

// awaitConfirm waits for the broker confirm of delivery tag seq. Confirms for
// earlier tags belong to publishes that already timed out and are skipped.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation, seq uint64) error {
	for {
		select {
		case confirmed, ok := <-confirms:
			if !ok {
				return errConfirmChannelClosed
			}
			if confirmed.DeliveryTag < seq {
				continue
			}
			if !confirmed.Ack {
				return errMessageNotConfirmed
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *RabbitMQSink) Close() error {
	return s.ch.Close()
}
