package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"

	"github.com/thiagorir/sinistros-transitos-br/internal/schema"
)

// Client implements Catalog and Loader on top of the BigQuery API.
type Client struct {
	bq       *bigquery.Client
	location string
}

// NewClient wraps an authenticated BigQuery client. location is where new
// datasets are created; existing datasets keep whatever location they have.
func NewClient(bq *bigquery.Client, location string) *Client {
	return &Client{bq: bq, location: location}
}

// DatasetExists probes the dataset's metadata. A 404 means absent; any
// other failure is surfaced, never treated as absence.
func (c *Client) DatasetExists(ctx context.Context, datasetID string) (bool, error) {
	_, err := c.bq.Dataset(datasetID).Metadata(ctx)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probing dataset %s: %w", datasetID, err)
	}
	return true, nil
}

// CreateDataset creates the dataset in the configured location.
func (c *Client) CreateDataset(ctx context.Context, datasetID string) error {
	meta := &bigquery.DatasetMetadata{Location: c.location}
	if err := c.bq.Dataset(datasetID).Create(ctx, meta); err != nil {
		return fmt.Errorf("creating dataset %s: %w", datasetID, err)
	}
	return nil
}

// TableExists probes the table's metadata, with the same 404 semantics as
// DatasetExists.
func (c *Client) TableExists(ctx context.Context, datasetID, tableID string) (bool, error) {
	_, err := c.bq.Dataset(datasetID).Table(tableID).Metadata(ctx)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probing table %s.%s: %w", datasetID, tableID, err)
	}
	return true, nil
}

// CreateTable creates the table with the inferred schema. The schema is
// applied only here; existing tables are never altered.
func (c *Client) CreateTable(ctx context.Context, datasetID, tableID string, tableSchema schema.TableSchema) error {
	meta := &bigquery.TableMetadata{Schema: ToBigQuerySchema(tableSchema)}
	if err := c.bq.Dataset(datasetID).Table(tableID).Create(ctx, meta); err != nil {
		return fmt.Errorf("creating table %s.%s: %w", datasetID, tableID, err)
	}
	return nil
}

// LoadFromURI appends the staged object into the destination table and
// waits for the job to reach a terminal state. The source format matches
// the staged files: CSV, ';' delimiter, one header row to skip, explicit
// schema (no autodetect).
func (c *Client) LoadFromURI(ctx context.Context, uri, datasetID, tableID string, tableSchema schema.TableSchema) error {
	ref := bigquery.NewGCSReference(uri)
	ref.SourceFormat = bigquery.CSV
	ref.FieldDelimiter = string(schema.Delimiter)
	ref.SkipLeadingRows = 1
	ref.Schema = ToBigQuerySchema(tableSchema)

	loader := c.bq.Dataset(datasetID).Table(tableID).LoaderFrom(ref)
	loader.WriteDisposition = bigquery.WriteAppend

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("starting load job for %s.%s: %w", datasetID, tableID, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for load job %s: %w", job.ID(), err)
	}
	if err := status.Err(); err != nil {
		return &JobError{Dataset: datasetID, Table: tableID, Err: err}
	}
	return nil
}

// ToBigQuerySchema converts an inferred schema to BigQuery field
// descriptors. Every column is NULLABLE: inference samples a prefix of the
// file, so no column can be proven non-null.
func ToBigQuerySchema(tableSchema schema.TableSchema) bigquery.Schema {
	fields := make(bigquery.Schema, len(tableSchema))
	for i, col := range tableSchema {
		fields[i] = &bigquery.FieldSchema{
			Name: col.Name,
			Type: fieldType(col.Type),
		}
	}
	return fields
}

func fieldType(t schema.ColumnType) bigquery.FieldType {
	switch t {
	case schema.TypeInteger:
		return bigquery.IntegerFieldType
	case schema.TypeFloat:
		return bigquery.FloatFieldType
	case schema.TypeBoolean:
		return bigquery.BooleanFieldType
	default:
		return bigquery.StringFieldType
	}
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
