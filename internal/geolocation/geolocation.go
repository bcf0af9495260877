// Package geolocation acquires a single, optional location fix for registration.
// Failure is never an error to the caller: no capability, a denied permission, a provider error, a stale fix or a
// timeout all yield a nil sample.
package geolocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gaia/internal/domain/validation"
	"gaia/internal/errors"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaximumAge = 60 * time.Second
)

// ErrPermissionDenied is what providers report when the user refuses to share a location.
var ErrPermissionDenied = errors.New("geolocation permission denied")

// Sample is the location attached to a registration.
type Sample struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64 // meters, nil when the provider did not report one
	Timestamp time.Time
}

// Position is a fix as reported by a provider. Timestamp is when the fix was taken.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Timestamp time.Time
}

// Options are passed through to the provider.
type Options struct {
	EnableHighAccuracy bool
	Timeout            time.Duration
	// MaximumAge is how old a cached fix may be and still be accepted.
	MaximumAge time.Duration
}

// DefaultOptions asks for a high accuracy fix within 10s, accepting one cached for up to 60s.
func DefaultOptions() Options {
	return Options{
		EnableHighAccuracy: true,
		Timeout:            DefaultTimeout,
		MaximumAge:         DefaultMaximumAge,
	}
}

// Provider is a platform location capability.
type Provider interface {
	// Capable reports whether the platform can locate at all.
	Capable() bool
	// CurrentPosition returns one fix. It should return when ctx is done.
	CurrentPosition(ctx context.Context, opts Options) (*Position, error)
}

// Acquirer turns a Provider into a bounded, single-shot lookup.
type Acquirer struct {
	provider Provider
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewAcquirer uses DefaultOptions. A nil provider behaves like UnavailableProvider.
func NewAcquirer(provider Provider, logger *slog.Logger) *Acquirer {
	return NewAcquirerWithOptions(provider, DefaultOptions(), logger)
}

// NewAcquirerWithOptions fills zero durations in opts with the defaults.
func NewAcquirerWithOptions(provider Provider, opts Options, logger *slog.Logger) *Acquirer {
	if provider == nil {
		provider = UnavailableProvider{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaximumAge <= 0 {
		opts.MaximumAge = DefaultMaximumAge
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Acquirer{
		provider: provider,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Options returns the options handed to the provider.
func (a *Acquirer) Options() Options {
	return a.opts
}

type result struct {
	pos *Position
	err error
}

// Acquire returns a sample or nil. It never blocks for longer than the configured timeout.
func (a *Acquirer) Acquire(ctx context.Context) *Sample {
	if !a.provider.Capable() {
		a.logger.Debug("Geolocation not supported")

		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		pos, err := a.provider.CurrentPosition(ctx, a.opts)
		done <- result{pos: pos, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		a.logger.Debug("Geolocation timed out", slog.Duration("timeout", a.opts.Timeout))

		return nil
	case res = <-done:
	}

	if res.err != nil {
		a.logger.Debug("Geolocation error", slog.Any("error", res.err))

		return nil
	}

	return a.toSample(res.pos)
}

func (a *Acquirer) toSample(pos *Position) *Sample {
	if pos == nil {
		return nil
	}

	now := a.now()
	if !pos.Timestamp.IsZero() && now.Sub(pos.Timestamp) > a.opts.MaximumAge {
		a.logger.Debug("Geolocation fix too old", slog.Time("taken_at", pos.Timestamp))

		return nil
	}
	if !validation.ValidateCoordinates(pos.Latitude, pos.Longitude) {
		a.logger.Debug("Geolocation fix out of range",
			slog.Float64("latitude", pos.Latitude),
			slog.Float64("longitude", pos.Longitude),
		)

		return nil
	}

	sample := &Sample{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Timestamp: now,
	}
	if pos.Accuracy > 0 {
		acc := pos.Accuracy
		sample.Accuracy = &acc
	}

	return sample
}

// FormatLocation renders "lat, lng" with six decimals.
func FormatLocation(s *Sample) string {
	if s == nil {
		return "Location not available"
	}

	return fmt.Sprintf("%.6f, %.6f", s.Latitude, s.Longitude)
}

// AccuracyLevel buckets an accuracy radius: High up to 10 m, Medium up to 100 m, Low beyond.
func AccuracyLevel(meters float64) string {
	switch {
	case meters <= 10:
		return "High"
	case meters <= 100:
		return "Medium"
	default:
		return "Low"
	}
}
