// Package config provides centralized configuration management for the
// ingestor. It loads configuration from environment variables with sensible
// defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	GCP      GCPConfig
	BigQuery BigQueryConfig
	Stage    StageConfig
	Infer    InferConfig
	Ledger   LedgerConfig
	Logging  LoggingConfig
}

// GCPConfig holds project-level cloud settings.
type GCPConfig struct {
	// ProjectID is the project owning the bucket and dataset (required)
	ProjectID string `env:"GCP_PROJECT_ID" required:"true"`

	// CredentialsFile is the path to a service account key JSON file.
	// When empty, application default credentials are used.
	CredentialsFile string `env:"GCP_SERVICE_ACCOUNT_KEY_PATH"`
}

// BigQueryConfig holds destination warehouse settings.
type BigQueryConfig struct {
	// DatasetID is the dataset every table is created in (required)
	DatasetID string `env:"BIGQUERY_DATASET_ID" required:"true"`

	// Location is where new datasets are created (default: US)
	Location string `env:"BIGQUERY_LOCATION" default:"US"`
}

// StageConfig holds staging object-store settings.
type StageConfig struct {
	// Bucket is the staging bucket name (required)
	Bucket string `env:"GCP_BUCKET_NAME" required:"true"`

	// Prefix is the object key prefix for staged files (default: raw_csv_uploads)
	Prefix string `env:"GCS_STAGE_PREFIX" default:"raw_csv_uploads"`
}

// InferConfig holds schema inference settings.
type InferConfig struct {
	// SampleRows bounds how many data rows are read per file (default: 100)
	SampleRows int `env:"INFER_SAMPLE_ROWS" default:"100"`
}

// LedgerConfig holds ingest history settings.
type LedgerConfig struct {
	// DatabaseURL enables the ingest history ledger when set. Files already
	// recorded as loaded are skipped on later runs. Empty disables the ledger.
	DatabaseURL string `env:"LEDGER_DATABASE_URL"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
