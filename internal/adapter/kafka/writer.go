// Package kafka publishes normalized HURDAT2 records as JSON messages for
// downstream loaders that prefer a stream over direct database access.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/good-kiwi/hurdat2-etl/internal/domain"
	"github.com/good-kiwi/hurdat2-etl/internal/pipeline"
)

// Record type header values, one per message kind on the topic.
const (
	recordTypeStorm       = "storm"
	recordTypeObservation = "observation"
	recordTypeIdentifier  = "identifier_code"
	recordTypeStatus      = "status_code"
)

// Writer implements pipeline.Loader by producing to a Kafka topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadReference publishes the two code tables.
func (w *Writer) LoadReference(ctx context.Context, identifiers, statuses []domain.CodeRow) error {
	msgs := make([]kafkago.Message, 0, len(identifiers)+len(statuses))
	for _, row := range identifiers {
		msg, err := serializeCodeRow(row, recordTypeIdentifier)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	for _, row := range statuses {
		msg, err := serializeCodeRow(row, recordTypeStatus)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

// LoadDataset publishes every storm and observation of one file in a single
// WriteMessages call, storms first so consumers see the parent before its
// points.
func (w *Writer) LoadDataset(ctx context.Context, ds pipeline.Dataset) error {
	msgs := make([]kafkago.Message, 0, len(ds.Storms)+len(ds.Observations))
	for _, s := range ds.Storms {
		msg, err := serializeStorm(s)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	for _, o := range ds.Observations {
		msg, err := serializeObservation(o)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish dataset %s: %w", ds.Source, err)
	}
	w.logger.Info("dataset published", "source", ds.Source, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// stormMessage is the wire form of a storm; the path geometry travels as WKT.
type stormMessage struct {
	EventID   string    `json:"event_id"`
	Basin     string    `json:"basin"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Path      string    `json:"path"`
}

func serializeStorm(s domain.Storm) (kafkago.Message, error) {
	data, err := json.Marshal(stormMessage{
		EventID:   s.EventID,
		Basin:     s.Basin,
		Name:      s.Name,
		StartTime: s.StartTime,
		Path:      s.Path.WKT(),
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize storm %s: %w", s.EventID, err)
	}
	return kafkago.Message{
		Key:     []byte(s.EventID),
		Value:   data,
		Headers: []kafkago.Header{{Key: "record_type", Value: []byte(recordTypeStorm)}},
	}, nil
}

func serializeObservation(o domain.Observation) (kafkago.Message, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize observation for %s: %w", o.EventID, err)
	}
	return kafkago.Message{
		Key:     []byte(o.EventID),
		Value:   data,
		Headers: []kafkago.Header{{Key: "record_type", Value: []byte(recordTypeObservation)}},
	}, nil
}

func serializeCodeRow(row domain.CodeRow, recordType string) (kafkago.Message, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s %d: %w", recordType, row.CodeID, err)
	}
	return kafkago.Message{
		Key:     []byte(strconv.Itoa(row.CodeID)),
		Value:   data,
		Headers: []kafkago.Header{{Key: "record_type", Value: []byte(recordType)}},
	}, nil
}
