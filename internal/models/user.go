package models

import "strings"

// User is a participant's display name.
//
// Names are unique within a conversation and compared with exact,
// case-sensitive equality after surrounding whitespace is trimmed.
type User = string

// NormalizeName trims surrounding whitespace from a display name.
func NormalizeName(name string) User {
	return strings.TrimSpace(name)
}
