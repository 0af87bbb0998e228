package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Summary aggregates the outcomes of one batch run.
type Summary struct {
	RunID     string
	Found     int
	Processed int
	Persisted int
	Errored   int
}

// Driver discovers documents under a root directory and runs the pipeline
// over them strictly one at a time, in depth-first discovery order. There
// is no shared state between documents and no per-document concurrency.
type Driver struct {
	pipeline *Pipeline
	errors   ErrorSink
	runs     RunStore
	logger   *slog.Logger
	exts     map[string]bool
}

// NewDriver wires a Driver. Only files with the given extensions are
// processed; nil defaults to ".txt", the format the upstream extraction
// step emits.
func NewDriver(p *Pipeline, errors ErrorSink, runs RunStore, logger *slog.Logger, exts ...string) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	if len(exts) == 0 {
		exts = []string{".txt"}
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}
	return &Driver{pipeline: p, errors: errors, runs: runs, logger: logger, exts: extSet}
}

// Run walks root depth-first and processes each matching document to
// completion before the next begins. Per-document failures of any kind
// become error entries; the only fatal fault is failing to enumerate the
// input tree itself.
func (d *Driver) Run(ctx context.Context, root string) (Summary, error) {
	runID := uuid.NewString()
	logCtx := d.logger.With("runId", runID, "root", root)
	startedAt := time.Now()
	logCtx.Info("Starting batch run.")

	summary := Summary{RunID: runID}
	var entries []models.ErrorEntry

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				// Cannot enumerate the input at all; abort the run.
				return fmt.Errorf("enumerate input documents at %s: %w", root, walkErr)
			}
			logCtx.Warn("Skipping unreadable path.", "path", path, "error", walkErr)
			entries = append(entries, models.ErrorEntry{
				File:    filepath.Base(path),
				Reason:  ReasonReadFailure,
				Details: map[string]any{"error": walkErr.Error()},
			})
			summary.Errored++
			return nil
		}
		if entry.IsDir() || !d.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		summary.Found++
		outcome, errEntry := d.processOne(ctx, path)
		summary.Processed++
		if outcome == OutcomePersisted {
			summary.Persisted++
		} else {
			summary.Errored++
			if errEntry != nil {
				entries = append(entries, *errEntry)
			}
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	if flushErr := d.flush(ctx, runID, root, startedAt, summary, entries); flushErr != nil {
		logCtx.Error("Failed to flush run results.", "error", flushErr)
		return summary, flushErr
	}

	logCtx.Info("Batch run complete.",
		"found", summary.Found,
		"processed", summary.Processed,
		"persisted", summary.Persisted,
		"errored", summary.Errored,
	)
	return summary, nil
}

// processOne is the per-document failure boundary: a panicking extractor
// costs one error entry, not the batch.
func (d *Driver) processOne(ctx context.Context, path string) (outcome Outcome, entry *models.ErrorEntry) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Recovered from panic while processing document.", "path", path, "panic", r)
			outcome = OutcomeRejected
			entry = &models.ErrorEntry{
				File:    filepath.Base(path),
				Reason:  fmt.Sprintf("falha inesperada ao processar o documento: %v", r),
				Details: map[string]any{"panic": fmt.Sprint(r)},
			}
		}
	}()
	return d.pipeline.ProcessDocument(ctx, path)
}

// flush writes the accumulated error log and the run summary. The two
// writes are independent, so they run under one errgroup; documents are
// long done by this point.
func (d *Driver) flush(ctx context.Context, runID, root string, startedAt time.Time, s Summary, entries []models.ErrorEntry) error {
	eg, gctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if len(entries) == 0 {
			return nil
		}
		if err := d.errors.Write(gctx, runID, entries); err != nil {
			return fmt.Errorf("write error log: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		summary := models.RunSummary{
			RunID:      runID,
			InputRoot:  root,
			Found:      s.Found,
			Processed:  s.Processed,
			Persisted:  s.Persisted,
			Errored:    s.Errored,
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
		}
		if err := d.runs.Save(gctx, summary); err != nil {
			return fmt.Errorf("write run summary: %w", err)
		}
		return nil
	})

	return eg.Wait()
}
