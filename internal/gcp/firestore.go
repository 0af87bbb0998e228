package gcp

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Lllllllleong/fleetdocumentflow/internal/models"
	"github.com/Lllllllleong/fleetdocumentflow/internal/pipeline"
	"google.golang.org/api/iterator"
)

// NewFirestoreClient creates and returns a new Firestore client for the
// given project ID. It centralizes client creation for all stores.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// FleetRegistry looks vehicles up in the dashboard-owned fleet collection.
// Read-only; the pipeline never writes here.
type FleetRegistry struct {
	client     *firestore.Client
	collection string
}

func NewFleetRegistry(client *firestore.Client, collection string) *FleetRegistry {
	return &FleetRegistry{client: client, collection: collection}
}

// Lookup runs an equality query on one of the three identifier fields and
// returns the single matching vehicle, or nil when there is none.
func (r *FleetRegistry) Lookup(ctx context.Context, field pipeline.RegistryField, value string) (*models.RegistryVehicle, error) {
	it := r.client.Collection(r.collection).Where(string(field), "==", value).Limit(1).Documents(ctx)
	defer it.Stop()

	doc, err := it.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query fleet registry by %s: %w", field, err)
	}

	var vehicle models.RegistryVehicle
	if err := doc.DataTo(&vehicle); err != nil {
		return nil, fmt.Errorf("decode fleet registry row %s: %w", doc.Ref.ID, err)
	}
	return &vehicle, nil
}

// ServiceOrderStore appends persisted service orders. Created once,
// immutable thereafter; there is deliberately no update method.
type ServiceOrderStore struct {
	client     *firestore.Client
	collection string
}

func NewServiceOrderStore(client *firestore.Client, collection string) *ServiceOrderStore {
	return &ServiceOrderStore{client: client, collection: collection}
}

func (s *ServiceOrderStore) Save(ctx context.Context, order models.ServiceOrder) (string, error) {
	ref, _, err := s.client.Collection(s.collection).Add(ctx, order)
	if err != nil {
		return "", fmt.Errorf("persist service order %s: %w", order.NumeroOS, err)
	}
	return ref.ID, nil
}

// errorLogDoc is the run-level error document: every entry accumulated
// during a run lands in one write.
type errorLogDoc struct {
	RunID     string              `firestore:"runId"`
	CreatedAt time.Time           `firestore:"createdAt"`
	Entries   []models.ErrorEntry `firestore:"entries"`
}

// ErrorLogStore appends the run error log for human review. Write-once;
// the pipeline never reads it back.
type ErrorLogStore struct {
	client     *firestore.Client
	collection string
}

func NewErrorLogStore(client *firestore.Client, collection string) *ErrorLogStore {
	return &ErrorLogStore{client: client, collection: collection}
}

func (s *ErrorLogStore) Write(ctx context.Context, runID string, entries []models.ErrorEntry) error {
	doc := errorLogDoc{
		RunID:     runID,
		CreatedAt: time.Now(),
		Entries:   entries,
	}
	if _, _, err := s.client.Collection(s.collection).Add(ctx, doc); err != nil {
		return fmt.Errorf("append error log for run %s: %w", runID, err)
	}
	return nil
}

// RunStore appends per-run audit summaries.
type RunStore struct {
	client     *firestore.Client
	collection string
}

func NewRunStore(client *firestore.Client, collection string) *RunStore {
	return &RunStore{client: client, collection: collection}
}

func (s *RunStore) Save(ctx context.Context, summary models.RunSummary) error {
	if _, _, err := s.client.Collection(s.collection).Add(ctx, summary); err != nil {
		return fmt.Errorf("persist run summary %s: %w", summary.RunID, err)
	}
	return nil
}
