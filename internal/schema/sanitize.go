package schema

// Sanitize maps a raw header or table token to a destination-safe
// identifier: ASCII letters are lowercased, digits and underscores pass
// through, and every other byte becomes an underscore. BigQuery identifiers
// are restricted to [a-z0-9_] here, so multi-byte runes collapse to one
// underscore per byte.
//
// Sanitize is pure, total and idempotent. Empty input yields empty output;
// callers must treat an empty result as invalid where an identifier is
// required.
func Sanitize(raw string) string {
	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			out[i] = c
		case c >= 'A' && c <= 'Z':
			out[i] = c + ('a' - 'A')
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
