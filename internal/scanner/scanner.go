// Package scanner decides, file by file, whether the media under a
// directory should be imported into a library item.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/admit/internal/decision"
	"github.com/vmunix/admit/internal/metrics"
	"github.com/vmunix/admit/internal/probe"
	"github.com/vmunix/admit/pkg/quality"
)

// Request describes one scan.
type Request struct {
	Family   quality.Family
	Root     string
	ItemID   int64          // 0 when the files are not for a known item
	Existing *quality.Model // held quality, when the caller already knows it
	Profile  decision.Profile
}

// Result is the outcome for one file. Err is set when no decision could be
// reached for the file; Decision is meaningless in that case.
type Result struct {
	Path          string
	RelativePath  string
	SizeBytes     int64
	Quality       quality.Model
	Decision      decision.Decision
	CutoffReached bool
	Err           error
}

// Accepted reports whether the file was decided and accepted.
func (r Result) Accepted() bool {
	return r.Err == nil && r.Decision.Accepted()
}

// Report is the outcome of a scan, with results sorted by path.
type Report struct {
	ID      string
	Family  quality.Family
	Root    string
	Results []Result
	Elapsed time.Duration
}

// Summary counts results by outcome.
type Summary struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Errors   int `json:"errors"`
}

// Summary counts the report's results.
func (r *Report) Summary() Summary {
	var s Summary
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			s.Errors++
		case res.Decision.Accepted():
			s.Accepted++
		default:
			s.Rejected++
		}
	}
	return s
}

// Scanner runs the decision engine over the files of a directory.
type Scanner struct {
	engine  *decision.Engine
	prober  probe.Prober
	metrics *metrics.Metrics
	workers int
	log     *slog.Logger
}

// New creates a scanner. workers < 1 means one file at a time.
// m may be nil.
func New(engine *decision.Engine, prober probe.Prober, m *metrics.Metrics, workers int, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Scanner{
		engine:  engine,
		prober:  prober,
		metrics: m,
		workers: workers,
		log:     log,
	}
}

// Scan decides every media file of the request's family under Root.
//
// A file that cannot be probed or decided is recorded in its Result and
// does not stop the scan. Cancellation does: Scan then returns an error
// satisfying errors.Is(err, context.Canceled) and no report.
func (s *Scanner) Scan(ctx context.Context, req Request) (*Report, error) {
	if _, err := quality.CatalogFor(req.Family); err != nil {
		return nil, err
	}
	info, err := os.Stat(req.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoRoot, req.Root)
	}

	start := time.Now()
	report := &Report{ID: uuid.NewString(), Family: req.Family, Root: req.Root}
	log := s.log.With("scan_id", report.ID, "family", req.Family, "root", req.Root)

	paths, err := FindMedia(ctx, req.Root, req.Family)
	if err != nil {
		return nil, err
	}
	log.Info("scan started", "files", len(paths), "workers", s.workers)

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			res, err := s.decideFile(gctx, req, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", req.Root, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", req.Root, err)
	}

	report.Results = results
	report.Elapsed = time.Since(start)
	sum := report.Summary()
	log.Info("scan finished",
		"accepted", sum.Accepted,
		"rejected", sum.Rejected,
		"errors", sum.Errors,
		"elapsed", report.Elapsed)
	return report, nil
}

// decideFile returns an error only for cancellation; every other fault is
// recorded in the Result.
func (s *Scanner) decideFile(ctx context.Context, req Request, path string) (Result, error) {
	res := Result{Path: path, RelativePath: relativePath(req.Root, path)}
	fail := func(err error) (Result, error) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		s.metrics.RecordScanError(req.Family)
		s.log.Warn("file not decided", "path", path, "error", err)
		res.Err = err
		return res, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(fmt.Errorf("stat: %w", err))
	}
	res.SizeBytes = info.Size()

	probed, err := s.prober.Probe(ctx, path)
	if err != nil {
		return fail(err)
	}
	res.Quality = parseQuality(req.Family, res.RelativePath, probed.AudioHint())

	c := decision.Candidate{
		Family:       req.Family,
		Path:         path,
		RelativePath: res.RelativePath,
		SizeBytes:    res.SizeBytes,
		Duration:     probed.Duration(),
		Tracks:       probed.Tracks(),
		Quality:      res.Quality,
	}
	ic := decision.Context{ItemID: req.ItemID, Existing: req.Existing, Profile: req.Profile}

	begin := time.Now()
	d, err := s.engine.Decide(ctx, c, ic)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, err
		}
		return fail(err)
	}
	s.metrics.RecordDecision(req.Family, d, time.Since(begin))

	res.Decision = d
	res.CutoffReached = d.Accepted() && quality.HasReachedCutoff(res.Quality, req.Profile.Cutoff)
	return res, nil
}

// parseQuality parses the file name, then falls back to the parent
// directory name, which often carries the release tags of a movie.
func parseQuality(family quality.Family, rel string, hint quality.AudioHint) quality.Model {
	m := quality.Parse(family, rel, hint)
	if !m.IsUnknown() || family != quality.FamilyMovie {
		return m
	}
	dir := filepath.Dir(filepath.FromSlash(rel))
	if dir == "." {
		return m
	}
	return quality.Parse(family, filepath.Base(dir), hint)
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(filepath.Base(path))
	}
	return filepath.ToSlash(rel)
}
