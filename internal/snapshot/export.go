package snapshot

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Exporter writes snapshots to a Store.
type Exporter struct {
	store  Store
	logger *slog.Logger
	jobs   int
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ExportOption {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithJobs bounds how many uploads run at once. Defaults to 4.
func WithJobs(n int) ExportOption {
	return func(e *Exporter) {
		if n > 0 {
			e.jobs = n
		}
	}
}

// NewExporter creates an exporter writing to store.
func NewExporter(store Store, opts ...ExportOption) *Exporter {
	e := &Exporter{store: store, logger: slog.Default(), jobs: 4}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export stores each snapshot as <name>.html and <name>.ops, uploading
// concurrently. It returns the stored locations in input order.
func (e *Exporter) Export(ctx context.Context, snaps []*Snapshot) ([]string, error) {
	locations := make([]string, 2*len(snaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)

	for i, snap := range snaps {
		ops, err := snap.EncodeOps()
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", snap.Name, err)
		}
		files := []struct {
			key, contentType string
			data             []byte
		}{
			{snap.Name + ".html", "text/html; charset=utf-8", snap.Document()},
			{snap.Name + ".ops", "application/msgpack", ops},
		}
		for j, f := range files {
			g.Go(func() error {
				loc, err := e.store.Put(gctx, f.key, f.contentType, f.data)
				if err != nil {
					return fmt.Errorf("export %s: %w", snap.Name, err)
				}
				e.logger.Debug("snapshot stored", "name", snap.Name, "location", loc, "bytes", len(f.data))
				locations[2*i+j] = loc
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger.Info("snapshots exported", "count", len(snaps))
	return locations, nil
}
