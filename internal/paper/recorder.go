package paper

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"prosperity-go/internal/execution"
	"prosperity-go/internal/market"
)

// TickRecord is one line of the decision log: what the controller emitted for a snapshot.
type TickRecord struct {
	Timestamp   int64                            `json:"timestamp"`
	Orders      map[market.Symbol][]market.Order `json:"orders"`
	Conversions int                              `json:"conversions"`
	TraderData  string                           `json:"trader_data"`
}

// JSONLRecorder appends fills and tick records as JSON lines for later analysis.
type JSONLRecorder struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
	err  error
}

// NewJSONLRecorder creates/opens the target file and returns a recorder.
func NewJSONLRecorder(path string) (*JSONLRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create recorder dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open recorder file: %w", err)
	}
	buf := bufio.NewWriter(file)
	return &JSONLRecorder{file: file, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Record writes a single fill. Encoding failures surface from Close.
func (r *JSONLRecorder) Record(fill execution.Fill) {
	_ = r.Write(fill)
}

// Write encodes any value as one line.
func (r *JSONLRecorder) Write(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return os.ErrClosed
	}
	if err := r.enc.Encode(v); err != nil {
		if r.err == nil {
			r.err = err
		}
		return err
	}
	return nil
}

// Close flushes and closes the file handle, reporting the first write error seen.
func (r *JSONLRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	flushErr := r.buf.Flush()
	closeErr := r.file.Close()
	r.file = nil
	switch {
	case r.err != nil:
		return r.err
	case flushErr != nil:
		return flushErr
	default:
		return closeErr
	}
}
