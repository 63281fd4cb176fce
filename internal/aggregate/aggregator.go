// Package aggregate collects component versions from content repositories.
//
// For every configured source the Aggregator opens the repository, selects
// the matching refs and materializes one fragment per ref. Sources and refs
// are processed in parallel; fragments are merged once every source has
// completed.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/git"
	"git.home.luguber.info/inful/doccatalog/internal/logfields"
	"git.home.luguber.info/inful/doccatalog/internal/metrics"
	"git.home.luguber.info/inful/doccatalog/internal/versioning"
)

const stageAggregate = "aggregate"

// Aggregator runs content aggregation for a playbook.
type Aggregator struct {
	cfg        *config.Config
	resolver   *git.Resolver
	recorder   metrics.Recorder
	comparator versioning.Comparator
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(a *Aggregator) { a.recorder = metrics.Or(r) }
}

// WithResolver replaces the resolver built from the configuration.
func WithResolver(r *git.Resolver) Option {
	return func(a *Aggregator) { a.resolver = r }
}

// WithComparator sets the version ordering used when sorting the result.
func WithComparator(cmp versioning.Comparator) Option {
	return func(a *Aggregator) { a.comparator = cmp }
}

// New creates an Aggregator for cfg. cfg must have defaults applied.
func New(cfg *config.Config, opts ...Option) *Aggregator {
	a := &Aggregator{cfg: cfg, recorder: metrics.NoopRecorder{}, comparator: versioning.Compare}
	for _, opt := range opts {
		opt(a)
	}
	if a.resolver == nil {
		ropts := git.FromConfig(cfg)
		ropts.Recorder = a.recorder
		a.resolver = git.NewResolver(ropts)
	}
	return a
}

// Aggregate returns the merged component versions of all sources sorted by
// name and version. The first failure cancels the remaining work.
func (a *Aggregator) Aggregate(ctx context.Context) (result []*ComponentVersion, err error) {
	done := metrics.Timer(a.recorder, stageAggregate)
	defer func() { done(err) }()
	start := time.Now()

	sources := a.cfg.Content.Sources
	perSource := make([][]*ComponentVersion, len(sources))
	limit := a.concurrency()
	a.recorder.SetSourceConcurrency(limit)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, src := range sources {
		g.Go(func() error {
			frags, err := a.aggregateSource(gctx, src)
			if err != nil {
				return err
			}
			perSource[i] = frags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var fragments []*ComponentVersion
	for _, frags := range perSource {
		fragments = append(fragments, frags...)
	}
	result = Merge(fragments, a.comparator)

	slog.Info("Aggregated content",
		slog.Int("sources", len(sources)),
		slog.Int("component_versions", len(result)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return result, nil
}

func (a *Aggregator) concurrency() int {
	if n := a.cfg.Runtime.Concurrency; n > 0 {
		return n
	}
	return config.DefaultConcurrency
}

// aggregateSource materializes every selected ref of one source. The
// handle is closed when all refs are done, whether or not they succeeded.
func (a *Aggregator) aggregateSource(ctx context.Context, src config.SourceConfig) ([]*ComponentVersion, error) {
	h, err := a.resolver.Open(ctx, git.Source{URL: src.URL, Auth: src.Auth})
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			slog.Warn("Failed to close content repository", logfields.URL(h.URL), logfields.Error(cerr))
		}
	}()

	remote := src.Remote
	if h.Remote {
		remote = git.CacheRemoteName
	}
	refs, err := git.SelectRefs(h, remote, a.cfg.BranchesFor(src), a.cfg.TagsFor(src))
	if err != nil {
		return nil, fmt.Errorf("select refs of %s: %w", h.URL, err)
	}
	if len(refs) == 0 {
		slog.Warn("No refs matched in content source", logfields.URL(h.URL))
		return nil, nil
	}

	opts := MaterializeOptions{StartPath: src.StartPath, Remote: remote, EditURL: a.cfg.EditURLEnabled(src)}
	frags := make([]*ComponentVersion, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency())
	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cv, err := Materialize(h, ref, opts)
			if err != nil {
				return err
			}
			a.recorder.IncRefsMaterialized(string(ref.Type))
			frags[i] = cv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Debug("Materialized content source", logfields.URL(h.URL), logfields.Count(len(frags)))
	return frags, nil
}
