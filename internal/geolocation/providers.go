package geolocation

import (
	"context"
	"time"
)

// UnavailableProvider is a platform without location support.
type UnavailableProvider struct{}

func (UnavailableProvider) Capable() bool { return false }

func (UnavailableProvider) CurrentPosition(context.Context, Options) (*Position, error) {
	return nil, ErrPermissionDenied
}

// StaticProvider reports a fixed position, or Err when set.
// A zero Position.Timestamp is stamped with the time of the call.
type StaticProvider struct {
	Position Position
	Err      error
}

func (p StaticProvider) Capable() bool { return true }

func (p StaticProvider) CurrentPosition(ctx context.Context, _ Options) (*Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}

	pos := p.Position
	if pos.Timestamp.IsZero() {
		pos.Timestamp = time.Now()
	}

	return &pos, nil
}
