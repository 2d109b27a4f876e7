// Package naming derives the destination table identity from the source
// file naming convention: <TableRaw>_DadosAbertos_<PartitionValue>.csv.
// The file name is the only metadata channel available, so anything that
// does not match the convention is rejected rather than guessed at.
package naming

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/thiagorir/sinistros-transitos-br/internal/schema"
)

// Marker separates the table name from the partition value in file names.
const Marker = "_DadosAbertos_"

// Skip reasons returned by Resolve. These are expected conditions, not
// failures: a non-matching file is left alone and the run continues.
var (
	ErrNotCSV         = errors.New("not a csv file")
	ErrMissingMarker  = errors.New("file name missing the " + Marker + " marker")
	ErrEmptyTableID   = errors.New("empty table id")
	ErrEmptyPartition = errors.New("empty partition value")
)

// Identity locates the destination slice for one source file. It is derived
// once per file and immutable for the file's processing lifetime.
type Identity struct {
	TableID        string
	PartitionValue string
}

// Resolve derives the destination identity from a file name. The extension
// must be .csv (case-insensitive) and the base name must contain Marker;
// the split happens on the first occurrence only, so further markers inside
// the partition value are preserved verbatim. The table prefix is sanitized
// into a destination identifier; the partition suffix is taken as-is.
func Resolve(filename string) (Identity, error) {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, ".csv") {
		return Identity{}, ErrNotCSV
	}

	stem := strings.TrimSuffix(base, ext)
	tableRaw, partition, found := strings.Cut(stem, Marker)
	if !found {
		return Identity{}, ErrMissingMarker
	}

	tableID := schema.Sanitize(tableRaw)
	if tableID == "" {
		return Identity{}, ErrEmptyTableID
	}
	if partition == "" {
		return Identity{}, ErrEmptyPartition
	}

	return Identity{TableID: tableID, PartitionValue: partition}, nil
}
