// Package batch plans many images concurrently against one shared
// resolution cache.
package batch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/menta2k/aspect-bucketer/internal/utils"
	"github.com/menta2k/aspect-bucketer/pkg/sizer"
	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// DefaultWorkers is the worker count used when none is configured
const DefaultWorkers = 4

// Prober reads the native size of an image file
type Prober interface {
	ProbeSize(path string) (types.Size, error)
}

// Renderer writes the planned version of an image file
type Renderer interface {
	ProcessFile(in, out string, plan types.Plan) error
	Extension() string
}

// Item is the outcome for one input file
type Item struct {
	Path      string     `json:"path"`
	Original  types.Size `json:"original"`
	Plan      types.Plan `json:"plan"`
	TooLarge  bool       `json:"too_large"`
	Output    string     `json:"output,omitempty"`
	Err       error      `json:"-"`
	ErrString string     `json:"error,omitempty"`
}

// Runner plans a set of files under one resolution spec
type Runner struct {
	sizer    *sizer.Sizer
	prober   Prober
	renderer Renderer
	spec     types.ResolutionSpec
	workers  int
	outDir   string
	prefix   string
	suffix   string
	logger   *slog.Logger
}

// NewRunner creates a runner that only plans
func NewRunner(s *sizer.Sizer, prober Prober, spec types.ResolutionSpec) *Runner {
	return &Runner{
		sizer:   s,
		prober:  prober,
		spec:    spec,
		workers: DefaultWorkers,
		logger:  slog.Default(),
	}
}

// SetWorkers bounds the number of files handled at once
func (r *Runner) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.workers = n
}

// SetLogger replaces the logger
func (r *Runner) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// SetOutput makes the runner render every planned file into dir
func (r *Runner) SetOutput(renderer Renderer, dir, prefix, suffix string) {
	r.renderer = renderer
	r.outDir = dir
	r.prefix = prefix
	r.suffix = suffix
}

// Run plans every path. Items come back in input order; per-file
// failures are recorded on the item. The returned error is non-nil only
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Item, error) {
	items := make([]Item, len(paths))

	// gctx is cancelled once Wait returns; only ctx reports the caller's state
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = r.process(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, ctx.Err()
}

func (r *Runner) process(path string) Item {
	item := Item{Path: path}
	fail := func(err error) Item {
		item.Err = err
		item.ErrString = err.Error()
		r.logger.Warn("failed to plan image", "path", path, "error", err)
		return item
	}

	size, err := r.prober.ProbeSize(path)
	if err != nil {
		return fail(err)
	}
	item.Original = size

	if item.TooLarge, err = r.sizer.IsTooLarge(size, r.spec); err != nil {
		return fail(err)
	}

	plan, err := r.sizer.Plan(size, r.spec)
	if err != nil {
		return fail(err)
	}
	item.Plan = plan
	r.logger.Debug("planned image", "path", path, "original", size, "plan", plan)

	if r.renderer == nil {
		return item
	}

	out := r.outputPath(path, plan)
	if err := r.renderer.ProcessFile(path, out, plan); err != nil {
		return fail(err)
	}
	item.Output = out
	r.logger.Info("wrote image", "path", out)
	return item
}

func (r *Runner) outputPath(in string, plan types.Plan) string {
	suffix := "_" + plan.Target.String() + r.suffix
	return utils.GenerateOutputFilename(in, r.outDir, r.prefix, suffix, r.renderer.Extension())
}
