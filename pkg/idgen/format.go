package idgen

import "fmt"

// FormatWithPrefix renders id in decimal behind prefix, e.g. "TXN123456789".
func FormatWithPrefix(id ID, prefix string) string {
	return prefix + id.String()
}

// FormatWithPrefixAt inserts prefix into the decimal rendering of id at byte position pos.
func FormatWithPrefixAt(id ID, prefix string, pos int) (string, error) {
	s := id.String()
	if pos < 0 || pos > len(s) {
		return "", fmt.Errorf("%w: position %d, ID length %d", ErrInvalidPrefixPosition, pos, len(s))
	}
	return s[:pos] + prefix + s[pos:], nil
}

// NextWithPrefix generates an ID and renders it behind prefix.
func (s *Snowflake) NextWithPrefix(prefix string) (string, error) {
	id, err := s.Next()
	if err != nil {
		return "", err
	}
	return FormatWithPrefix(id, prefix), nil
}

// NextWithPrefixAt generates an ID and inserts prefix at pos. The ID is consumed even
// when pos turns out to be invalid for its length.
func (s *Snowflake) NextWithPrefixAt(prefix string, pos int) (string, error) {
	id, err := s.Next()
	if err != nil {
		return "", err
	}
	return FormatWithPrefixAt(id, prefix, pos)
}
