// Command os-batch walks a directory tree of extracted memo texts, runs
// the service-order pipeline over every document, and writes the results
// (orders, error log, run summary) to Firestore.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Lllllllleong/fleetdocumentflow/internal/extract"
	"github.com/Lllllllleong/fleetdocumentflow/internal/gcp"
	"github.com/Lllllllleong/fleetdocumentflow/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Local runs keep credentials and collection names in a .env file; in
	// managed environments the variables are already set.
	_ = godotenv.Load()

	inputDir := flag.String("input", gcp.GetEnv("INPUT_DIR", ""), "root directory of extracted memo texts")
	flag.Parse()
	if *inputDir == "" {
		slog.Error("No input directory given; pass -input or set INPUT_DIR.")
		os.Exit(2)
	}

	projectID := gcp.GetEnv("PROJECT_ID", "")
	if projectID == "" {
		slog.Error("PROJECT_ID environment variable must be set.")
		os.Exit(2)
	}

	ctx := context.Background()
	firestoreClient, err := gcp.NewFirestoreClient(ctx, projectID)
	if err != nil {
		slog.Error("Failed to create Firestore client", "error", err)
		os.Exit(1)
	}
	defer firestoreClient.Close()

	registry := gcp.NewFleetRegistry(firestoreClient, gcp.GetEnv("FLEET_COLLECTION", "frota"))
	orders := gcp.NewServiceOrderStore(firestoreClient, gcp.GetEnv("ORDERS_COLLECTION", "ordensDeServico"))
	errorLog := gcp.NewErrorLogStore(firestoreClient, gcp.GetEnv("ERRORS_COLLECTION", "errosLeituraOS"))
	runs := gcp.NewRunStore(firestoreClient, gcp.GetEnv("RUNS_COLLECTION", "execucoesExtracao"))

	extractor := extract.New(extract.Config{
		CityAnchor:    gcp.GetEnv("MEMO_CITY_ANCHOR", ""),
		RequestAnchor: gcp.GetEnv("MEMO_REQUEST_ANCHOR", ""),
	})

	p := pipeline.New(pipeline.FSSource{}, registry, orders, extractor, logger)
	driver := pipeline.NewDriver(p, errorLog, runs, logger)

	summary, err := driver.Run(ctx, *inputDir)
	if err != nil {
		slog.Error("Batch run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("run %s: %d documents found, %d processed, %d persisted, %d logged for review\n",
		summary.RunID, summary.Found, summary.Processed, summary.Persisted, summary.Errored)
}
