package preload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/aiham/dymaxion/pkg/barrier"
)

// DefaultWorkers bounds concurrent reads when Loader.Workers is zero.
const DefaultWorkers = 8

// ErrEmptyAsset is reported for an asset file with no content.
var ErrEmptyAsset = errors.New("asset is empty")

// Failure is an asset that could not be loaded.
type Failure struct {
	Asset Asset  `json:"asset"`
	Err   string `json:"error"`
}

// Report summarizes a Load call.
type Report struct {
	Total    int       `json:"total"`
	Loaded   int       `json:"loaded"`
	Failures []Failure `json:"failures,omitempty"`
}

// OK reports whether every asset loaded.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// Loader reads assets from FS on a bounded worker pool.
type Loader struct {
	FS      fs.FS
	Workers int
	Logger  *slog.Logger

	// Progress, if set, is called after each asset with the running counts.
	// Calls are serialized.
	Progress func(loaded, failed, total int)
}

// Load reads every asset. A failed asset still counts as completed, so Load
// always returns a full Report once every asset has been tried. The error is
// non-nil only when the asset list is unusable or ctx ends first.
func (l *Loader) Load(ctx context.Context, assets []Asset) (Report, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := l.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}
	b, err := barrier.New(ids, func() {
		logger.Debug("preload complete", "total", len(ids))
	})
	if err != nil {
		return Report{}, fmt.Errorf("preload: %w", err)
	}

	var (
		mu     sync.Mutex
		report = Report{Total: len(assets)}
	)
	finish := func(a Asset, loadErr error) {
		mu.Lock()
		if loadErr != nil {
			report.Failures = append(report.Failures, Failure{Asset: a, Err: loadErr.Error()})
			logger.Warn("asset failed", "id", a.ID, "path", a.Path, "err", loadErr)
		} else {
			report.Loaded++
		}
		if l.Progress != nil {
			l.Progress(report.Loaded, len(report.Failures), report.Total)
		}
		mu.Unlock()
		// IDs were validated by barrier.New, so MarkDone cannot fail.
		_ = b.MarkDone(a.ID)
	}

	p := pool.New().WithMaxGoroutines(workers)
	for _, a := range assets {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				finish(a, err)
				return
			}
			finish(a, l.read(a))
		})
	}
	p.Wait()
	slices.SortFunc(report.Failures, func(x, y Failure) int { return strings.Compare(x.Asset.ID, y.Asset.ID) })

	if err := b.Wait(ctx); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (l *Loader) read(a Asset) error {
	data, err := fs.ReadFile(l.FS, a.Path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyAsset, a.Path)
	}
	return nil
}
