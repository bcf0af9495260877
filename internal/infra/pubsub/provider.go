// Package pubsub publishes member events to a message queue.
package pubsub

import (
	"context"
	"log/slog"

	"gaia/config"
	"gaia/internal/domain/service"
	"gaia/internal/errors"

	"go.uber.org/fx"
)

// noopPublisher is a no-op implementation when events are disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishMemberEvent(_ context.Context, event *service.MemberEvent) error {
	p.logger.Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("type", event.Type),
		slog.String("event_id", event.ID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.Events
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Member events not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	var publisher service.EventPublisher
	var err error

	switch cfg.Provider {
	case config.EventsProviderLocal:
		logger.Info("Using local HTTP publisher for member events",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case config.EventsProviderGoogle:
		logger.Info("Using Google Pub/Sub publisher for member events",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown events provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing EventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// attributes are copied onto every message for broker-side filtering and tracing.
func attributes(event *service.MemberEvent) map[string]string {
	attrs := map[string]string{
		"type":    event.Type,
		"user_id": event.UserID,
	}
	if event.RequestID != "" {
		attrs["request_id"] = event.RequestID
	}

	return attrs
}
