package capture

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"libriscan/internal/scanning"
	"libriscan/internal/services"
)

// ReplaySource feeds a fixed sequence of frames at a configurable rate. It
// backs the CLI's file/stdin scanning modes and the session tests.
type ReplaySource struct {
	frames   []scanning.Frame
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	out     chan scanning.Frame
	quit    chan struct{}
	running bool
}

// NewReplaySource builds a source that emits the given frames in order,
// spaced by interval (zero means as fast as the consumer allows).
func NewReplaySource(frames []scanning.Frame, interval time.Duration) *ReplaySource {
	return &ReplaySource{
		frames:   frames,
		interval: interval,
		now:      time.Now,
	}
}

// ReadFrames parses a frame-per-line stream, skipping blank lines and
// comments. A malformed line aborts the read; replay files are authored,
// not scanned, so silently dropping lines would hide mistakes.
func ReadFrames(r io.Reader) ([]scanning.Frame, error) {
	var frames []scanning.Frame
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		frame, err := ParseFrameLine(line)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	if err := sc.Err(); err != nil {
		return nil, services.Wrap(services.ErrCaptureUnavailable, "capture", "read", "frame stream failed", err)
	}
	return frames, nil
}

// Start begins emitting frames on a background goroutine.
func (r *ReplaySource) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}
	r.out = make(chan scanning.Frame)
	r.quit = make(chan struct{})
	r.running = true

	go r.run(ctx, r.out, r.quit)
	return nil
}

// Frames returns the frame channel; nil before Start.
func (r *ReplaySource) Frames() <-chan scanning.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out
}

// Stop halts emission and closes the frame channel.
func (r *ReplaySource) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	close(r.quit)
	r.running = false
}

func (r *ReplaySource) run(ctx context.Context, out chan<- scanning.Frame, quit <-chan struct{}) {
	defer close(out)

	var ticker *time.Ticker
	if r.interval > 0 {
		ticker = time.NewTicker(r.interval)
		defer ticker.Stop()
	}

	for _, frame := range r.frames {
		if frame.Timestamp.IsZero() {
			frame.Timestamp = r.now()
		}
		select {
		case out <- frame:
		case <-ctx.Done():
			return
		case <-quit:
			return
		}
		if ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			case <-quit:
				return
			}
		}
	}
}
