package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIDLength bounds tier and leaf identifiers. Node ids are derived from
// them, so they end up in DOT output and cache keys.
const maxIDLength = 128

// ValidateID validates a tier or leaf identifier from a hierarchy file.
//
// The rules are conservative:
//   - No empty ids
//   - No whitespace or control characters
//   - No double quotes (ids are embedded verbatim in DOT)
//   - Maximum length of 128 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "%s id cannot be empty", kind)
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "%s id %q too long (max %d characters)", kind, id, maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "%s id %q contains whitespace or control characters", kind, id)
		}
	}

	if strings.ContainsRune(id, '"') {
		return New(ErrCodeInvalidID, "%s id %q contains a double quote", kind, id)
	}

	return nil
}

// ValidatePosition rejects coordinates that are NaN or infinite.
// A poisoned position stored as an override would corrupt every later
// layout pass for that node.
func ValidatePosition(x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return New(ErrCodeInvalidPosition, "non-finite position (%v, %v)", x, y)
	}
	return nil
}
