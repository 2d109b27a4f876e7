package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thiagorir/sinistros-transitos-br/internal/schema"
	"github.com/thiagorir/sinistros-transitos-br/internal/warehouse"
)

// Reconciler ensures destination entities exist before a load. Both
// operations are create-if-absent, never alter-if-present: existence is
// probed first, creation happens only on "not found", and any other probe
// failure surfaces as an error rather than being treated as absence.
type Reconciler struct {
	catalog warehouse.Catalog
}

// NewReconciler returns a Reconciler over the given catalog.
func NewReconciler(catalog warehouse.Catalog) *Reconciler {
	return &Reconciler{catalog: catalog}
}

// EnsureDataset makes sure the dataset exists, creating it if absent.
func (r *Reconciler) EnsureDataset(ctx context.Context, datasetID string) error {
	exists, err := r.catalog.DatasetExists(ctx, datasetID)
	if err != nil {
		return fmt.Errorf("dataset existence check: %w", err)
	}
	if exists {
		slog.Debug("dataset already exists", "dataset", datasetID)
		return nil
	}

	slog.Info("creating dataset", "dataset", datasetID)
	if err := r.catalog.CreateDataset(ctx, datasetID); err != nil {
		return fmt.Errorf("dataset create: %w", err)
	}
	return nil
}

// EnsureTable makes sure the table exists and reports whether it now does
// (true both when it already existed and when it was just created). The
// inferred schema is used only at creation time; an existing table's schema
// is never compared against, altered, or validated. Schema drift across
// successive loads of the same table is an accepted limitation.
func (r *Reconciler) EnsureTable(ctx context.Context, datasetID, tableID string, tableSchema schema.TableSchema) (bool, error) {
	exists, err := r.catalog.TableExists(ctx, datasetID, tableID)
	if err != nil {
		return false, fmt.Errorf("table existence check: %w", err)
	}
	if exists {
		slog.Debug("table already exists", "dataset", datasetID, "table", tableID)
		return true, nil
	}

	slog.Info("creating table", "dataset", datasetID, "table", tableID, "columns", len(tableSchema))
	if err := r.catalog.CreateTable(ctx, datasetID, tableID, tableSchema); err != nil {
		return false, fmt.Errorf("table create: %w", err)
	}
	return true, nil
}
