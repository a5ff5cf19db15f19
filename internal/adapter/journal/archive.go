// Package journal holds feeding-journal sinks that sit beside the queryable
// repositories: a compressed JSONL archive and a fan-out writer.
package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"
)

// Archive appends events as JSON lines to hourly zstd files named
// <prefix>-YYYY-MM-DD-HH.jsonl.zst under dir.
type Archive struct {
	dir    string
	prefix string
	now    func() time.Time

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewArchive(dir, prefix string) *Archive {
	if prefix == "" {
		prefix = "feeding"
	}
	return &Archive{dir: dir, prefix: prefix, now: time.Now}
}

func (a *Archive) Append(_ context.Context, events []predator.Event) error {
	if len(events) == 0 {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	hour := a.now().UTC().Format("2006-01-02-15")
	if hour != a.curHour {
		if err := a.rotateLocked(hour); err != nil {
			return err
		}
	}
	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := a.w.Write(b); err != nil {
			return err
		}
		if err := a.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := a.w.Flush(); err != nil {
		return err
	}
	return a.enc.Flush()
}

func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closeLocked()
}

func (a *Archive) PathForHour(hour string) string {
	return filepath.Join(a.dir, fmt.Sprintf("%s-%s.jsonl.zst", a.prefix, hour))
}

func (a *Archive) rotateLocked(hour string) error {
	if err := a.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(a.PathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	a.f = f
	a.enc = enc
	a.w = bufio.NewWriterSize(enc, 64*1024)
	a.curHour = hour
	return nil
}

func (a *Archive) closeLocked() error {
	var encErr error
	if a.w != nil {
		_ = a.w.Flush()
	}
	if a.enc != nil {
		encErr = a.enc.Close()
		a.enc = nil
	}
	if a.f != nil {
		_ = a.f.Close()
		a.f = nil
	}
	a.w = nil
	a.curHour = ""
	return encErr
}

// ReadArchive decodes every event in one archive file. Appending after a
// restart adds a second zstd frame to the same file; the decoder reads both.
// The current hour's file ends mid-frame; everything flushed so far is returned.
func ReadArchive(r io.Reader) ([]predator.Event, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out := make([]predator.Event, 0)
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		var e predator.Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("decode archive line: %w", err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return out, err
	}
	return out, nil
}

var _ ports.EventAppender = (*Archive)(nil)
