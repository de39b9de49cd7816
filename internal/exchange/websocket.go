package exchange

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"prosperity-go/internal/market"
)

func (f *Feed) runWebsocket(ctx context.Context, out chan<- market.Snapshot) error {
	if f.url == "" {
		return fmt.Errorf("websocket feed requires a url")
	}
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := f.consumeWebsocket(ctx, out)
		if err == nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			f.log.Info().Str("url", f.url).Msg("simulator closed snapshot stream")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.log.Warn().Err(err).Msg("snapshot stream disconnected, retrying")
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
	}
}

func (f *Feed) consumeWebsocket(ctx context.Context, out chan<- market.Snapshot) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f.log.Info().Str("provider", ProviderWebsocket).Str("url", f.url).Msg("connected snapshot stream")
	conn.SetReadLimit(maxSnapshotLine)

	// Unblock ReadMessage when the context ends.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		kind, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if kind != websocket.TextMessage {
			continue
		}
		var snap market.Snapshot
		if err := json.Unmarshal(message, &snap); err != nil {
			f.log.Warn().Err(err).Msg("failed to decode snapshot message")
			continue
		}
		if err := publish(ctx, out, snap); err != nil {
			return err
		}
	}
}
