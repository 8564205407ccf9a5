package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Astemirdum/driver-rating/pkg/circuit_breaker"
	"github.com/Astemirdum/driver-rating/pkg/kafka"
	"github.com/Astemirdum/driver-rating/rating/internal/model"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Enqueuer struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

// NewCircuitBreaker returns the breaker settings used for the rating producer.
func NewCircuitBreaker() circuit_breaker.CircuitBreaker {
	return circuit_breaker.New(10, 30*time.Second, 0.5, 3)
}

func NewEnqueuer(producer sarama.SyncProducer, cb circuit_breaker.CircuitBreaker, log *zap.Logger) *Enqueuer {
	return &Enqueuer{
		producer: producer,
		cb:       cb,
		log:      log.Named("queue"),
	}
}

func (q *Enqueuer) Enqueue(topic string, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

// PublishRating sends the stored rating to the rating topic keyed by plate.
// Failures are logged only.
func (q *Enqueuer) PublishRating(_ context.Context, r model.Rating) {
	msg := model.RatingMsg{ID: r.ID, Plate: r.Plate, Score: r.Score, Comment: r.Comment}
	err := q.cb.Call(func() error {
		return q.Enqueue(kafka.RatingTopic, r.Plate, msg)
	})
	switch {
	case err == nil:
		q.log.Debug("rating published", zap.Int("id", r.ID))
	case errors.Is(err, circuit_breaker.ErrOpenCB):
		q.log.Warn("rating event dropped", zap.Int("id", r.ID), zap.Error(err))
	default:
		q.log.Error("rating publish", zap.Int("id", r.ID), zap.Error(err))
	}
}

func (q *Enqueuer) Close() error {
	return q.producer.Close()
}
