// Package exchange hosts the snapshot sources that drive the decision engine.
package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"prosperity-go/internal/market"
	"prosperity-go/internal/metrics"
)

const (
	// ProviderReplay reads snapshots from a JSON-lines file, one snapshot per line.
	ProviderReplay = "replay"
	// ProviderWebsocket receives snapshots as text messages from a simulator websocket.
	ProviderWebsocket = "websocket"
)

// Feed represents a pluggable snapshot stream implementation.
type Feed struct {
	provider string
	path     string
	url      string
	log      zerolog.Logger
}

// Option configures Feed construction parameters.
type Option func(*Feed)

// WithPath sets the file read by the replay provider.
func WithPath(path string) Option {
	return func(f *Feed) { f.path = path }
}

// WithURL sets the endpoint dialled by the websocket provider.
func WithURL(url string) Option {
	return func(f *Feed) { f.url = url }
}

// NewFeed constructs a feed backed by the requested provider.
func NewFeed(provider string, log zerolog.Logger, opts ...Option) *Feed {
	if provider == "" {
		provider = ProviderReplay
	}
	f := &Feed{provider: strings.ToLower(provider), log: log}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run pushes snapshots onto out until the source is exhausted or the context is canceled.
// A replay that reaches end of file returns nil.
func (f *Feed) Run(ctx context.Context, out chan<- market.Snapshot) error {
	switch f.provider {
	case ProviderReplay:
		return f.runReplay(ctx, out)
	case ProviderWebsocket:
		return f.runWebsocket(ctx, out)
	default:
		return fmt.Errorf("unknown feed provider %q", f.provider)
	}
}

func publish(ctx context.Context, out chan<- market.Snapshot, snap market.Snapshot) error {
	select {
	case out <- snap:
		for sym := range snap.OrderDepths {
			metrics.TicksTotal.WithLabelValues(string(sym)).Inc()
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
