package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Lllllllleong/fleetdocumentflow/internal/extract"
	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
)

// Rejection reasons carried on error entries. The error log is what the
// administrative staff read when correcting and re-submitting documents, so
// the wording stays in the documents' language.
const (
	ReasonTemplateDeviation = "documento não segue o modelo de ordem de serviço"
	ReasonReadFailure       = "falha ao ler o texto do documento"
	ReasonWriteFailure      = "falha ao gravar a ordem de serviço"
)

// TextSource yields the extracted plain text of one document. Batch mode
// reads pre-extracted files from disk; event mode reads from GCS, with
// Vertex transcription for scanned memos.
type TextSource interface {
	Read(ctx context.Context, path string) (string, error)
}

// RegistryField names the three fleet registry lookup keys.
type RegistryField string

const (
	FieldCadastro RegistryField = "cadastro"
	FieldModelo   RegistryField = "modelo"
	FieldPlaca    RegistryField = "placa"
)

// FleetRegistry is the authoritative vehicle lookup. Lookup returns nil
// when no row matches; it is never written by the pipeline.
type FleetRegistry interface {
	Lookup(ctx context.Context, field RegistryField, value string) (*models.RegistryVehicle, error)
}

// OrderStore appends one persisted service order and returns its generated
// identifier. There is no update path.
type OrderStore interface {
	Save(ctx context.Context, order models.ServiceOrder) (string, error)
}

// ErrorSink receives all entries accumulated during a run in a single
// write at the end.
type ErrorSink interface {
	Write(ctx context.Context, runID string, entries []models.ErrorEntry) error
}

// RunStore persists the per-run audit summary.
type RunStore interface {
	Save(ctx context.Context, summary models.RunSummary) error
}

// Outcome is the terminal state of one document.
type Outcome int

const (
	OutcomePersisted Outcome = iota
	OutcomeRejected
)

// Pipeline processes one document end to end: read, extract, cross-
// reference, classify, then persist or reject. All collaborators are
// injected; the pipeline owns no client lifecycle.
type Pipeline struct {
	source    TextSource
	registry  FleetRegistry
	orders    OrderStore
	extractor *extract.Extractor
	logger    *slog.Logger
	now       func() time.Time
}

// New assembles a Pipeline. A nil logger falls back to slog.Default.
func New(source TextSource, registry FleetRegistry, orders OrderStore, extractor *extract.Extractor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:    source,
		registry:  registry,
		orders:    orders,
		extractor: extractor,
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessDocument reads one document from the source and processes its
// text. Every failure mode is converted into an error entry; nothing
// escapes to abort the batch.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) (Outcome, *models.ErrorEntry) {
	fileName := filepath.Base(path)
	text, err := p.source.Read(ctx, path)
	if err != nil {
		p.logger.Error("Failed to read document text.", "file", fileName, "error", err)
		return OutcomeRejected, &models.ErrorEntry{
			File:    fileName,
			Reason:  ReasonReadFailure,
			Details: map[string]any{"error": err.Error()},
		}
	}
	return p.ProcessText(ctx, fileName, text)
}

// ProcessText runs the extraction pipeline over already-extracted text.
func (p *Pipeline) ProcessText(ctx context.Context, fileName, text string) (Outcome, *models.ErrorEntry) {
	logCtx := p.logger.With("file", fileName)

	rec := p.extractor.Extract(text, fileName)
	CrossReference(ctx, p.registry, &rec, logCtx)
	rec.Completo = Complete(rec)

	if !rec.Completo {
		logCtx.Info("Document rejected as incomplete.", "record", rec.AsMap())
		return OutcomeRejected, &models.ErrorEntry{
			File:    fileName,
			Reason:  ReasonTemplateDeviation,
			Details: rec.AsMap(),
		}
	}

	order := MapRecord(rec, p.now())
	id, err := p.orders.Save(ctx, order)
	if err != nil {
		// A complete record that fails to write is logged for review, never
		// retried in-run and never silently dropped.
		logCtx.Error("Failed to persist service order.", "error", err)
		details := rec.AsMap()
		details["error"] = err.Error()
		return OutcomeRejected, &models.ErrorEntry{
			File:    fileName,
			Reason:  fmt.Sprintf("%s: %v", ReasonWriteFailure, err),
			Details: details,
		}
	}

	logCtx.Info("Service order persisted.", "orderId", id, "numeroOS", order.NumeroOS)
	return OutcomePersisted, nil
}
