package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vmunix/admit/internal/decision"
	"github.com/vmunix/admit/internal/library"
	"github.com/vmunix/admit/internal/metrics"
	"github.com/vmunix/admit/internal/probe"
	"github.com/vmunix/admit/internal/scanner"
	"github.com/vmunix/admit/pkg/quality"
)

type scanOptions struct {
	itemID      int64
	workers     int
	record      bool
	metricsFile string
}

func newScanCmd(a *app) *cobra.Command {
	var opts scanOptions
	cmd := &cobra.Command{
		Use:   "scan [flags] <dir>",
		Short: "Decide which media files under a directory should be imported",
		Long: `Walk a directory for media files of one family, probe and parse each,
and decide whether it should be imported.

With --item, decisions consider the files already held for that library
item, and --record stores accepted files against it, replacing a held file
at the same path. A movie is compared with its best held file; a music item
is an album, so each track is compared with the held file at its own path.

Examples:
  admit scan /downloads/Movie.2024.1080p.BluRay
  admit scan --family music --item 3 --record /downloads/Artist-Album-FLAC
  admit scan --json --metrics-file /var/lib/node_exporter/admit.prom /downloads`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := familyFlag(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runScan(ctx, cmd.OutOrStdout(), family, args[0], opts)
		},
	}
	cmd.Flags().StringP("family", "f", string(quality.FamilyMovie), "Media family: movie or music")
	cmd.Flags().Int64Var(&opts.itemID, "item", 0, "Library item the files are for")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Files decided in parallel (default: scan.workers)")
	cmd.Flags().BoolVar(&opts.record, "record", false, "Record accepted files against --item")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	return cmd
}

func (a *app) runScan(ctx context.Context, w io.Writer, family quality.Family, root string, opts scanOptions) error {
	if opts.record && opts.itemID == 0 {
		return errors.New("--record requires --item")
	}
	profile, err := a.cfg.Profile(family)
	if err != nil {
		return err
	}

	store, db, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if opts.itemID != 0 {
		item, err := store.GetItem(ctx, opts.itemID)
		if err != nil {
			return err
		}
		if item.Family != family {
			return fmt.Errorf("item %d is %s, scan is %s", item.ID, item.Family, family)
		}
	}

	workers := opts.workers
	if workers == 0 {
		workers = a.cfg.Scan.Workers
	}
	reg := prometheus.NewRegistry()
	engine := decision.NewEngine(a.log.With("component", "engine"), decision.DefaultRuleSets(store, store)...)
	s := scanner.New(engine, probe.Command{Binary: a.cfg.Scan.FFprobe}, metrics.New(reg), workers, a.log.With("component", "scanner"))

	report, err := s.Scan(ctx, scanner.Request{
		Family:  family,
		Root:    root,
		ItemID:  opts.itemID,
		Profile: profile,
	})
	if err != nil {
		return err
	}

	var recorded int
	if opts.record {
		if recorded, err = recordAccepted(ctx, store, opts.itemID, report); err != nil {
			return err
		}
		a.log.Info("recorded accepted files", "item_id", opts.itemID, "files", recorded)
	}

	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if a.jsonOutput {
		return printJSON(w, toScanJSON(report, recorded))
	}
	printScanReport(w, report)
	return nil
}

// recordAccepted stores every accepted file in one transaction.
func recordAccepted(ctx context.Context, store *library.Store, itemID int64, report *scanner.Report) (int, error) {
	tx, err := store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	n := 0
	for _, res := range report.Results {
		if !res.Accepted() {
			continue
		}
		f := &library.File{
			ItemID:       itemID,
			RelativePath: res.RelativePath,
			SizeBytes:    res.SizeBytes,
			Quality:      res.Quality,
		}
		if err := tx.PutFile(ctx, f); err != nil {
			return 0, fmt.Errorf("record %s: %w", res.RelativePath, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

type scanResultJSON struct {
	Path          string               `json:"path"`
	RelativePath  string               `json:"relative_path"`
	SizeBytes     int64                `json:"size_bytes"`
	Quality       *modelJSON           `json:"quality,omitempty"`
	Accepted      bool                 `json:"accepted"`
	CutoffReached bool                 `json:"cutoff_reached"`
	Rejections    []decision.Rejection `json:"rejections,omitempty"`
	Error         string               `json:"error,omitempty"`
}

type scanJSON struct {
	ScanID    string           `json:"scan_id"`
	Family    quality.Family   `json:"family"`
	Root      string           `json:"root"`
	ElapsedMS int64            `json:"elapsed_ms"`
	Summary   scanner.Summary  `json:"summary"`
	Recorded  int              `json:"recorded"`
	Results   []scanResultJSON `json:"results"`
}

func toScanJSON(r *scanner.Report, recorded int) scanJSON {
	out := scanJSON{
		ScanID:    r.ID,
		Family:    r.Family,
		Root:      r.Root,
		ElapsedMS: r.Elapsed.Milliseconds(),
		Summary:   r.Summary(),
		Recorded:  recorded,
		Results:   make([]scanResultJSON, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		j := scanResultJSON{
			Path:         res.Path,
			RelativePath: res.RelativePath,
			SizeBytes:    res.SizeBytes,
		}
		if res.Err != nil {
			j.Error = res.Err.Error()
		} else {
			m := toModelJSON(r.Family, res.Quality)
			j.Quality = &m
			j.Accepted = res.Decision.Accepted()
			j.CutoffReached = res.CutoffReached
			j.Rejections = res.Decision.Rejections
		}
		out.Results = append(out.Results, j)
	}
	return out
}

func printScanReport(w io.Writer, r *scanner.Report) {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		var q, outcome string
		switch {
		case res.Err != nil:
			q, outcome = "-", "error: "+res.Err.Error()
		case res.Decision.Accepted():
			q, outcome = res.Quality.String(), "accepted"
			if res.CutoffReached {
				outcome += " (cutoff reached)"
			}
		default:
			q = res.Quality.String()
			reasons := make([]string, 0, len(res.Decision.Rejections))
			for _, rej := range res.Decision.Rejections {
				reasons = append(reasons, string(rej.Reason))
			}
			outcome = "rejected: " + strings.Join(reasons, ", ")
		}
		rows = append(rows, []string{res.RelativePath, formatBytes(res.SizeBytes), q, outcome})
	}
	printTable(w, []string{"File", "Size", "Quality", "Decision"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft})

	sum := r.Summary()
	_, _ = fmt.Fprintf(w, "%d accepted, %d rejected, %d errors\n", sum.Accepted, sum.Rejected, sum.Errors)
}
