// Package warehouse talks to the destination data warehouse: catalog
// probes and creation, and bulk load jobs from staged objects.
package warehouse

import (
	"context"
	"fmt"

	"github.com/thiagorir/sinistros-transitos-br/internal/schema"
)

// Catalog probes and creates datasets and tables. Existence checks must
// distinguish "not found" (false, nil) from probe failures (error); a
// failed probe is never treated as absence.
type Catalog interface {
	DatasetExists(ctx context.Context, datasetID string) (bool, error)
	CreateDataset(ctx context.Context, datasetID string) error
	TableExists(ctx context.Context, datasetID, tableID string) (bool, error)
	CreateTable(ctx context.Context, datasetID, tableID string, tableSchema schema.TableSchema) error
}

// Loader runs a load job from a staged object into a destination table and
// blocks until the job reaches a terminal state. A job that completes and
// fails is reported as a *JobError; transport failures submitting or
// polling the job are plain errors.
type Loader interface {
	LoadFromURI(ctx context.Context, uri, datasetID, tableID string, tableSchema schema.TableSchema) error
}

// JobError reports a load job that reached a terminal failed state. It is
// distinct from transport errors so callers can tell "the warehouse
// rejected the data" from "we could not talk to the warehouse".
type JobError struct {
	Dataset string
	Table   string
	Err     error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("load job for %s.%s failed: %v", e.Dataset, e.Table, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }
