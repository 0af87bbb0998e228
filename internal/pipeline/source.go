package pipeline

import (
	"context"
	"fmt"
	"os"
)

// FSSource reads pre-extracted document text from the local filesystem.
// This is the batch driver's source; the text itself is produced upstream
// by the office-document extraction step.
type FSSource struct{}

func (FSSource) Read(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
