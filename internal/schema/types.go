// Package schema infers destination table schemas from delimiter-separated
// source files. Column types live in a small widening lattice; sampling a
// file joins the evidence from each cell into a final per-column type.
package schema

// ColumnType is the destination type of a single column.
type ColumnType string

// The four destination types. They form a lattice ordered
// INTEGER < FLOAT < STRING, with BOOLEAN as a leaf that joins with any
// other type to STRING. STRING is absorbing: once a column is STRING it
// never narrows.
const (
	TypeString  ColumnType = "STRING"
	TypeInteger ColumnType = "INTEGER"
	TypeFloat   ColumnType = "FLOAT"
	TypeBoolean ColumnType = "BOOLEAN"
)

// Join returns the least upper bound of two column types. It is total,
// commutative and associative, so the final type of a column does not
// depend on the order its values were sampled in.
func Join(a, b ColumnType) ColumnType {
	switch {
	case a == b:
		return a
	case a == TypeString || b == TypeString:
		return TypeString
	case a == TypeBoolean || b == TypeBoolean:
		// BOOLEAN mixed with anything non-boolean is only representable as text.
		return TypeString
	default:
		// The remaining distinct pair is INTEGER and FLOAT.
		return TypeFloat
	}
}

// ColumnSpec is one destination column: a sanitized identifier and its type.
type ColumnSpec struct {
	Name string
	Type ColumnType
}

// TableSchema is the ordered column list for one destination table,
// in first-seen header order. It is built once per file and never mutated.
type TableSchema []ColumnSpec
