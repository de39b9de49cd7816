package exchange

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"prosperity-go/internal/market"
)

const maxSnapshotLine = 8 << 20

func (f *Feed) runReplay(ctx context.Context, out chan<- market.Snapshot) error {
	if f.path == "" {
		return fmt.Errorf("replay feed requires a path")
	}
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open replay: %w", err)
	}
	defer file.Close()

	f.log.Info().Str("provider", ProviderReplay).Str("path", f.path).Msg("replaying snapshots")
	return scanSnapshots(file, func(line int, snap market.Snapshot, err error) error {
		if err != nil {
			f.log.Warn().Err(err).Int("line", line).Msg("skipping malformed snapshot")
			return nil
		}
		return publish(ctx, out, snap)
	})
}

// ReadSnapshots decodes every snapshot in a JSON-lines stream, failing on the first bad line.
func ReadSnapshots(r io.Reader) ([]market.Snapshot, error) {
	var snaps []market.Snapshot
	err := scanSnapshots(r, func(line int, snap market.Snapshot, err error) error {
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		snaps = append(snaps, snap)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

// LoadSnapshots reads a JSON-lines snapshot file from disk.
func LoadSnapshots(path string) ([]market.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshots: %w", err)
	}
	defer file.Close()
	return ReadSnapshots(file)
}

func scanSnapshots(r io.Reader, fn func(line int, snap market.Snapshot, err error) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSnapshotLine)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var snap market.Snapshot
		decodeErr := json.Unmarshal(raw, &snap)
		if err := fn(line, snap, decodeErr); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan snapshots: %w", err)
	}
	return nil
}
