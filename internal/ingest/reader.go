// Package ingest holds the line-oriented file connectors that feed the desk
// services. Each connector owns its column schema; records are
// comma-separated, one per line, and any malformed record stops the run.
package ingest

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	stderrors "errors"

	"github.com/yanun0323/errors"
	"golang.org/x/time/rate"

	"main/internal/fractional"
)

var ErrMalformedRecord = stderrors.New("malformed record")

// followPollInterval is how long a tailing reader waits at end of input
// before checking for new records.
const followPollInterval = 200 * time.Millisecond

// Reader walks a record stream line by line, optionally pacing delivery to
// simulate a live feed during replay. Sharing one reader across several
// subscriptions serializes their record delivery.
type Reader struct {
	limiter *rate.Limiter
	follow  bool
	mu      sync.Mutex
}

// NewReader creates a reader delivering at most recordsPerSec records per
// second. Zero or negative means unpaced.
func NewReader(recordsPerSec float64) *Reader {
	r := &Reader{}
	if recordsPerSec > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(recordsPerSec), 1)
	}
	return r
}

// Follow switches the reader to tail mode: at end of input it waits for new
// records until the context is canceled instead of returning.
func (r *Reader) Follow() *Reader {
	r.follow = true
	return r
}

// Lines invokes fn for every non-empty line with its 1-based line number.
// The first error from fn stops the walk. In tail mode the walk only ends
// through fn failing or context cancellation.
func (r *Reader) Lines(ctx context.Context, src io.Reader, fn func(n int, line string) error) error {
	if r.follow {
		return r.tail(ctx, src, fn)
	}
	scanner := bufio.NewScanner(src)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := r.deliver(ctx, n, line, fn); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (r *Reader) tail(ctx context.Context, src io.Reader, fn func(n int, line string) error) error {
	br := bufio.NewReader(src)
	n := 0
	var partial strings.Builder
	for {
		chunk, err := br.ReadString('\n')
		partial.WriteString(chunk)
		if err == nil {
			n++
			line := strings.TrimSpace(partial.String())
			partial.Reset()
			if line == "" {
				continue
			}
			if err := r.deliver(ctx, n, line, fn); err != nil {
				return err
			}
			continue
		}
		if !stderrors.Is(err, io.EOF) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(followPollInterval):
		}
	}
}

func (r *Reader) deliver(ctx context.Context, n int, line string, fn func(n int, line string) error) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(n, line)
}

// splitRecord splits a comma-separated record and checks the column count.
func splitRecord(n int, line string, want int) ([]string, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) != want {
		return nil, errors.Wrapf(ErrMalformedRecord, "line %d: expected %d fields, got %d", n, want, len(fields))
	}
	return fields, nil
}

// parsePrice parses a fractional price field.
func parsePrice(n int, field string) (float64, error) {
	price, err := fractional.Parse(field)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedRecord, "line %d: price %q: %v", n, field, err)
	}
	return price, nil
}

// parseQuantity parses an integer quantity field.
func parseQuantity(n int, field string) (int64, error) {
	quantity, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedRecord, "line %d: quantity %q", n, field)
	}
	return quantity, nil
}
