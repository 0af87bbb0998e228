package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	executions "cloud.google.com/go/workflows/executions/apiv1"
	"cloud.google.com/go/workflows/executions/apiv1/executionspb"
	"github.com/Lllllllleong/fleetdocumentflow/internal/extract"
	"github.com/Lllllllleong/fleetdocumentflow/internal/gcp"
	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
	"github.com/Lllllllleong/fleetdocumentflow/internal/pipeline"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Memos are one- or two-page letters; anything past this is almost
// certainly a mis-filed upload worth flagging in the logs.
const maxMemoPages = 4

type ExtractorConfig struct {
	ProjectID        string
	VertexAIRegion   string
	TextCacheBucket  string
	FleetCollection  string
	OrdersCollection string
	ErrorsCollection string
	ReviewWorkflowID string
	WorkflowLocation string
}

// ExtractorFunction processes one memo per GCS finalize event: transcribe
// if needed, extract, cross-reference, then persist or log for review.
type ExtractorFunction struct {
	storageClient    *storage.Client
	firestoreClient  *firestore.Client
	executionsClient *executions.Client
	vertexClient     *gcp.VertexClient
	pipeline         *pipeline.Pipeline
	errorLog         pipeline.ErrorSink
	config           ExtractorConfig
}

type GCSEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

func NewExtractor(ctx context.Context) (*ExtractorFunction, error) {
	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}

	config := ExtractorConfig{
		ProjectID:        projectID,
		VertexAIRegion:   gcp.GetEnv("VERTEX_AI_REGION", "us-central1"),
		TextCacheBucket:  gcp.GetEnv("TEXT_CACHE_BUCKET", ""),
		FleetCollection:  gcp.GetEnv("FLEET_COLLECTION", "frota"),
		OrdersCollection: gcp.GetEnv("ORDERS_COLLECTION", "ordensDeServico"),
		ErrorsCollection: gcp.GetEnv("ERRORS_COLLECTION", "errosLeituraOS"),
		ReviewWorkflowID: gcp.GetEnv("REVIEW_WORKFLOW_ID", ""),
		WorkflowLocation: gcp.GetEnv("WORKFLOW_LOCATION", "us-central1"),
	}
	if config.TextCacheBucket == "" {
		return nil, fmt.Errorf("TEXT_CACHE_BUCKET environment variable must be set")
	}

	firestoreClient, err := gcp.NewFirestoreClient(ctx, config.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	vertexClient, err := gcp.NewVertexClient(ctx, config.ProjectID, config.VertexAIRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex client: %w", err)
	}

	var executionsClient *executions.Client
	if config.ReviewWorkflowID != "" {
		executionsClient, err = executions.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create Workflows Executions client: %w", err)
		}
	}

	registry := gcp.NewFleetRegistry(firestoreClient, config.FleetCollection)
	orders := gcp.NewServiceOrderStore(firestoreClient, config.OrdersCollection)
	errorLog := gcp.NewErrorLogStore(firestoreClient, config.ErrorsCollection)

	f := &ExtractorFunction{
		storageClient:    storageClient,
		firestoreClient:  firestoreClient,
		executionsClient: executionsClient,
		vertexClient:     vertexClient,
		// Event mode feeds text to the pipeline directly; no TextSource.
		pipeline: pipeline.New(nil, registry, orders, extract.New(extract.Config{
			CityAnchor:    gcp.GetEnv("MEMO_CITY_ANCHOR", ""),
			RequestAnchor: gcp.GetEnv("MEMO_REQUEST_ANCHOR", ""),
		}), slog.Default()),
		errorLog: errorLog,
		config:   config,
	}
	slog.Info("Service-order extractor initialized.", "reviewWorkflow", config.ReviewWorkflowID != "")
	return f, nil
}

// Process handles one uploaded memo. Transcription failures return an
// error so the event is redelivered; pipeline rejections are terminal and
// land in the error log instead.
func (f *ExtractorFunction) Process(ctx context.Context, e GCSEvent) error {
	logCtx := slog.With("gcsBucket", e.Bucket, "gcsObject", e.Name)
	logCtx.Info("Processing uploaded memo.")

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(e.Name)) {
	case ".txt":
		text, err = gcp.ReadObject(ctx, f.storageClient, e.Bucket, e.Name)
	case ".pdf":
		text, err = f.transcribePDF(ctx, logCtx, e)
	default:
		logCtx.Info("Ignoring object with unsupported extension.")
		return nil
	}
	if err != nil {
		logCtx.Error("Failed to obtain document text.", "error", err)
		return err
	}

	executionID := uuid.NewString()
	outcome, errEntry := f.pipeline.ProcessText(ctx, filepath.Base(e.Name), text)
	if outcome == pipeline.OutcomePersisted {
		return nil
	}

	if errEntry != nil {
		if err := f.errorLog.Write(ctx, executionID, []models.ErrorEntry{*errEntry}); err != nil {
			logCtx.Error("Failed to append error log entry.", "error", err)
			return err
		}
		if err := f.triggerReviewWorkflow(ctx, logCtx, executionID, *errEntry); err != nil {
			// Review hand-off is best-effort; the entry is already durable.
			logCtx.Warn("Failed to trigger review workflow.", "error", err)
		}
	}
	return nil
}

// transcribePDF repairs and optimizes the scanned memo locally, stages it
// in the text-cache bucket, transcribes it with the Vertex model, and
// caches the transcript so redelivered events skip the model call.
func (f *ExtractorFunction) transcribePDF(ctx context.Context, logCtx *slog.Logger, e GCSEvent) (string, error) {
	tempDir, err := os.MkdirTemp("", "os-extractor-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	sourcePath := filepath.Join(tempDir, "memo.pdf")
	if err := gcp.StreamObjectToFile(ctx, f.storageClient, e.Bucket, e.Name, sourcePath); err != nil {
		return "", err
	}

	optimizedPath := filepath.Join(tempDir, "optimized.pdf")
	if err := optimizePDF(sourcePath, optimizedPath); err != nil {
		return "", fmt.Errorf("failed to validate/optimize PDF: %w", err)
	}

	pageCount, err := api.PageCountFile(optimizedPath)
	if err != nil {
		return "", fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount > maxMemoPages {
		logCtx.Warn("Memo has unusually many pages.", "pageCount", pageCount)
	}

	objectBase := strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
	stagedObject := fmt.Sprintf("%s/optimized.pdf", objectBase)
	if err := gcp.UploadFile(ctx, f.storageClient, optimizedPath, f.config.TextCacheBucket, stagedObject); err != nil {
		return "", err
	}

	text, err := f.vertexClient.Transcribe(ctx, fmt.Sprintf("gs://%s/%s", f.config.TextCacheBucket, stagedObject))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("transcription of gs://%s/%s produced no text", e.Bucket, e.Name)
	}

	cacheObject := fmt.Sprintf("%s/transcript.txt", objectBase)
	bucketHandle := f.storageClient.Bucket(f.config.TextCacheBucket)
	if err := gcp.SaveToGCSAtomically(ctx, bucketHandle, cacheObject, text); err != nil {
		logCtx.Warn("Failed to cache transcript.", "object", cacheObject, "error", err)
	}

	logCtx.Info("Memo transcribed.", "pageCount", pageCount, "chars", len(text))
	return text, nil
}

func (f *ExtractorFunction) triggerReviewWorkflow(ctx context.Context, logCtx *slog.Logger, executionID string, entry models.ErrorEntry) error {
	if f.executionsClient == nil {
		return nil
	}
	logCtx.Info("Triggering review workflow.", "file", entry.File)

	payload := map[string]interface{}{
		"executionId": executionID,
		"file":        entry.File,
		"reason":      entry.Reason,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal review payload: %w", err)
	}

	req := &executionspb.CreateExecutionRequest{
		Parent: fmt.Sprintf("projects/%s/locations/%s/workflows/%s", f.config.ProjectID, f.config.WorkflowLocation, f.config.ReviewWorkflowID),
		Execution: &executionspb.Execution{
			Argument: string(payloadBytes),
		},
	}
	if _, err := f.executionsClient.CreateExecution(ctx, req); err != nil {
		return fmt.Errorf("failed to trigger review workflow execution: %w", err)
	}
	return nil
}

func optimizePDF(inPath, outPath string) error {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return api.OptimizeFile(inPath, outPath, cfg)
}
