package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/thiagorir/sinistros-transitos-br/internal/logging"
	"github.com/thiagorir/sinistros-transitos-br/internal/naming"
	"github.com/thiagorir/sinistros-transitos-br/internal/schema"
	"github.com/thiagorir/sinistros-transitos-br/internal/stage"
	"github.com/thiagorir/sinistros-transitos-br/internal/warehouse"
)

// History is the optional record of files loaded by earlier runs. A nil
// History disables the check and every file is processed.
type History interface {
	AlreadyLoaded(ctx context.Context, fileName string) (bool, error)
	RecordLoad(ctx context.Context, fileName, tableID, partitionValue string) error
}

// Deps are the collaborators the pipeline drives. Catalog, Store and Loader
// are required; History may be nil.
type Deps struct {
	Catalog warehouse.Catalog
	Store   stage.Store
	Loader  warehouse.Loader
	History History
}

// Pipeline processes source files one at a time: each file runs to a
// terminal outcome before the next begins, and no state is shared across
// files except the destination catalog itself, which is re-checked per file.
type Pipeline struct {
	datasetID  string
	sampleRows int
	reconciler *Reconciler
	store      stage.Store
	loader     warehouse.Loader
	history    History
}

// New builds a Pipeline targeting datasetID, sampling up to sampleRows data
// rows per file for schema inference (<= 0 means the default).
func New(datasetID string, sampleRows int, deps Deps) *Pipeline {
	if sampleRows <= 0 {
		sampleRows = schema.DefaultSampleRows
	}
	return &Pipeline{
		datasetID:  datasetID,
		sampleRows: sampleRows,
		reconciler: NewReconciler(deps.Catalog),
		store:      deps.Store,
		loader:     deps.Loader,
		history:    deps.History,
	}
}

// ProcessFile runs one file through the state machine
// naming → dataset → schema → table → staging → load, short-circuiting on
// the first skip or failure. It always returns a terminal Outcome; errors
// are reported in it, never propagated. Side effects of completed steps
// (a created dataset or table, a staged object) are idempotent or externally
// visible and are not rolled back when a later step fails.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) Outcome {
	file := filepath.Base(path)
	log := logging.WithFields(ctx, "file", file)

	id, err := naming.Resolve(file)
	if err != nil {
		log.Info("skipping file", "reason", err.Error())
		return Outcome{File: file, Status: StatusSkipped, Stage: StageNaming, Reason: err.Error()}
	}
	log = log.With("table", id.TableID, "partition", id.PartitionValue)

	out := Outcome{File: file, TableID: id.TableID, Partition: id.PartitionValue}

	if p.history != nil {
		done, err := p.history.AlreadyLoaded(ctx, file)
		if err != nil {
			// History is an optimization; losing it must not block ingestion.
			log.Warn("ingest history unavailable, processing anyway", "error", err)
		} else if done {
			log.Info("skipping file loaded by a previous run")
			out.Status, out.Stage, out.Reason = StatusSkipped, StageHistory, "already loaded"
			return out
		}
	}

	if err := p.reconciler.EnsureDataset(ctx, p.datasetID); err != nil {
		log.Error("dataset provisioning failed", "dataset", p.datasetID, "error", err)
		out.Status, out.Stage, out.Err = StatusFailed, StageDataset, err
		return out
	}

	tableSchema, err := schema.InferSchema(path, p.sampleRows)
	if err != nil {
		log.Error("schema inference failed", "error", err)
		out.Status, out.Stage, out.Err = StatusFailed, StageSchema, err
		return out
	}
	log.Info("schema inferred", "columns", len(tableSchema))

	if _, err := p.reconciler.EnsureTable(ctx, p.datasetID, id.TableID, tableSchema); err != nil {
		log.Error("table provisioning failed", "error", err)
		out.Status, out.Stage, out.Err = StatusFailed, StageTable, err
		return out
	}

	uri, err := p.store.Upload(ctx, path, file)
	if err != nil {
		log.Error("staging upload failed", "error", err)
		out.Status, out.Stage, out.Err = StatusFailed, StageStaging, err
		return out
	}
	log.Info("file staged", "uri", uri)

	if err := p.loader.LoadFromURI(ctx, uri, p.datasetID, id.TableID, tableSchema); err != nil {
		var jobErr *warehouse.JobError
		if errors.As(err, &jobErr) {
			log.Error("load job failed", "error", jobErr.Err)
		} else {
			log.Error("load request failed", "error", err)
		}
		out.Status, out.Stage, out.Err = StatusFailed, StageLoad, err
		return out
	}

	if p.history != nil {
		if err := p.history.RecordLoad(ctx, file, id.TableID, id.PartitionValue); err != nil {
			log.Warn("could not record load in ingest history", "error", err)
		}
	}

	log.Info("file loaded")
	out.Status, out.Stage = StatusLoaded, StageComplete
	return out
}

// ProcessDirectory processes every regular file in dir, strictly
// sequentially, in directory-listing order. Per-file failures never abort
// the run; the only returned error is a failure to list the directory
// itself.
func (p *Pipeline) ProcessDirectory(ctx context.Context, dir string) (Summary, error) {
	ctx = logging.WithRunID(ctx, uuid.NewString())
	log := logging.WithFields(ctx, "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	log.Info("run started", "entries", len(entries))

	var sum Summary
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		sum.add(p.ProcessFile(ctx, filepath.Join(dir, entry.Name())))
	}

	log.Info("run finished",
		"attempted", sum.Attempted,
		"loaded", sum.Loaded,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
	)
	return sum, nil
}
