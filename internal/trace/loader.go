package trace

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"golang.org/x/sync/errgroup"
)

// Decode parses a trace from r.
// It fails when the input is not a JSON object or lacks the duration range
// or the event list. A missing metadata.resources key is not an error.
func Decode(r io.Reader) (*model.Trace, error) {
	var t model.Trace
	if err := json.NewDecoder(bufio.NewReader(r)).Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if _, ok := t.Range(); !ok {
		return nil, ErrMissingRange
	}
	if t.TraceEvents == nil {
		return nil, ErrMissingEvents
	}

	return &t, nil
}

// ReadFile reads and decodes the trace at path and records its on-disk size.
func ReadFile(path string) (*model.Trace, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided trace path
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat trace %s: %w", path, err)
	}

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace %s: %w", path, err)
	}

	t.Path = path
	t.FileSize = info.Size()

	return t, nil
}

// LoadPair reads the before and after traces concurrently.
// If either file fails, the pair fails and no trace is returned.
func LoadPair(ctx context.Context, beforePath, afterPath string) (*model.Trace, *model.Trace, error) {
	var before, after *model.Trace

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := ReadFile(beforePath)
		if err != nil {
			return err
		}
		before = t
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := ReadFile(afterPath)
		if err != nil {
			return err
		}
		after = t
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return before, after, nil
}
