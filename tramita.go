package tramita

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/tramita/internal/engine"
	"github.com/aretw0/tramita/internal/logging"
	"github.com/aretw0/tramita/pkg/domain"
	"github.com/aretw0/tramita/pkg/ports"
)

// Version is the library version, overridable at build time.
var Version = "0.1.0"

// Engine is the high-level entry point for the tramita library.
// It wraps the pure core and re-reads the metadata source on every call:
// idempotent re-invocation is the concurrency contract, not caching.
type Engine struct {
	source   ports.MetadataSource
	store    ports.SnapshotStore
	storeKey string
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore attaches a SnapshotStore as a read-through cache under the
// given key. Every successful source read is persisted to the store, and
// when the source fails the last stored snapshot is served instead, so a
// flaky upstream feed does not lock documents in place.
func WithStore(store ports.SnapshotStore, key string) Option {
	return func(e *Engine) {
		e.store = store
		e.storeKey = key
	}
}

// New creates an Engine reading metadata from the given source.
func New(source ports.MetadataSource, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("metadata source is required")
	}

	e := &Engine{
		source: source,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Snapshot returns the current metadata snapshot from the source. With a
// store attached it behaves as a read-through cache: successful reads are
// persisted, failed reads fall back to the stored copy.
func (e *Engine) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := e.source.Snapshot(ctx)
	if err != nil {
		if e.store != nil {
			cached, loadErr := e.store.Load(ctx, e.storeKey)
			if loadErr == nil {
				e.logger.Warn("metadata source failed, serving stored snapshot",
					"err", err, "key", e.storeKey)
				return cached, nil
			}
		}
		return nil, fmt.Errorf("failed to read metadata source: %w", err)
	}
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	if e.store != nil {
		if saveErr := e.store.Save(ctx, e.storeKey, snap); saveErr != nil {
			e.logger.Warn("failed to persist snapshot", "err", saveErr, "key", e.storeKey)
		}
	}
	return snap, nil
}

// AvailableSteps computes the steps the document may be presented for
// moving to. See the engine semantics: open-world fallback when the graph
// has nothing for the document, self-transfer injection except on intake
// steps.
func (e *Engine) AvailableSteps(ctx context.Context, doc domain.Document) ([]domain.Step, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	steps := engine.AvailableSteps(doc, snap.Edges, snap.Catalog)
	e.logger.Debug("resolved available steps", "document", doc.ID, "count", len(steps))
	return steps, nil
}

// AvailableUsers computes who may receive the document on the given
// destination step.
func (e *Engine) AvailableUsers(ctx context.Context, doc domain.Document, stepID int64) ([]domain.User, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	users := engine.AvailableUsersForStep(stepID, doc, snap.Edges, snap.Users)
	e.logger.Debug("resolved available users", "document", doc.ID, "step", stepID, "count", len(users))
	return users, nil
}

// Tree assembles the process hierarchy into a forest and annotates it with
// the document's execution history.
func (e *Engine) Tree(ctx context.Context, history []domain.ExecutionRecord) (*domain.TreeResult, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	res := engine.BuildTree(snap.Hierarchy)
	engine.Annotate(res.Roots, history, snap.Catalog)

	if len(res.Orphans) > 0 || len(res.Duplicates) > 0 {
		e.logger.Warn("hierarchy has defects",
			"orphans", len(res.Orphans),
			"duplicates", len(res.Duplicates))
	}
	return res, nil
}

// Timeline projects the document's annotated hierarchy onto the linear
// executed/current/next view.
func (e *Engine) Timeline(ctx context.Context, doc domain.Document, history []domain.ExecutionRecord) (*domain.Timeline, error) {
	res, err := e.Tree(ctx, history)
	if err != nil {
		return nil, err
	}

	tl := engine.ProjectTimeline(engine.Flatten(res.Roots), doc)
	if tl.NextOptionsCount > 1 {
		e.logger.Debug("ambiguous next step", "document", doc.ID, "options", tl.NextOptionsCount)
	}
	return tl, nil
}
