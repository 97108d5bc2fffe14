package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/config"
	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher is a struct to interact with nats
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewNATSPublisher creates a new publisher and ensures the layers stream
// exists
func NewNATSPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.RegisteredSubject, cfg.DeletedSubject},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}, nil
}

type layerRegisteredEvent struct {
	ID        uuid.UUID `json:"id"`
	LayerName string    `json:"layer_name"`
	Filename  string    `json:"filename"`
	MinValue  float64   `json:"min_value"`
	MaxValue  float64   `json:"max_value"`
	Enabled   bool      `json:"enabled"`
}

type layerDeletedEvent struct {
	ID        uuid.UUID `json:"id"`
	LayerName string    `json:"layer_name"`
}

// LayerRegistered publishes a catalog registration event
func (p *Publisher) LayerRegistered(ctx context.Context, layer domain.Layer) error {
	payload, err := json.Marshal(layerRegisteredEvent{
		ID:        layer.ID,
		LayerName: layer.LayerName,
		Filename:  layer.Filename,
		MinValue:  layer.MinValue,
		MaxValue:  layer.MaxValue,
		Enabled:   layer.Enabled,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, p.config.RegisteredSubject, payload); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("layer registered event published",
		slog.String("layerName", layer.LayerName))
	return nil
}

// LayerDeleted publishes a catalog removal event
func (p *Publisher) LayerDeleted(ctx context.Context, id uuid.UUID, layerName string) error {
	payload, err := json.Marshal(layerDeletedEvent{ID: id, LayerName: layerName})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, p.config.DeletedSubject, payload); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("layer deleted event published",
		slog.String("layerName", layerName))
	return nil
}

// Close graceful shutdown
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
