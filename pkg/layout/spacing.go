package layout

import (
	"fmt"
	"strings"
)

// SpacingMode selects a preset of layout constants.
type SpacingMode int

const (
	// Compact is the initial mode.
	Compact SpacingMode = iota
	// Formatted is the wide, non-overlapping mode entered by Format.
	Formatted
)

// Spacing is a named preset of layout constants.
type Spacing struct {
	TierGap   float64 // horizontal distance between tier slots
	Columns   int     // leaves per grid row
	ColumnGap float64 // horizontal distance between leaves in a row
	RowGap    float64 // vertical distance between leaf rows
}

var presets = map[SpacingMode]Spacing{
	Compact:   {TierGap: 400, Columns: 3, ColumnGap: 220, RowGap: 100},
	Formatted: {TierGap: 600, Columns: 2, ColumnGap: 300, RowGap: 120},
}

// Spacing returns the constants for m. Unknown modes fall back to Compact.
func (m SpacingMode) Spacing() Spacing {
	if s, ok := presets[m]; ok {
		return s
	}
	return presets[Compact]
}

func (m SpacingMode) String() string {
	switch m {
	case Compact:
		return "compact"
	case Formatted:
		return "formatted"
	default:
		return fmt.Sprintf("SpacingMode(%d)", int(m))
	}
}

// ParseSpacingMode parses "compact" or "formatted" (case-insensitive).
func ParseSpacingMode(s string) (SpacingMode, error) {
	switch strings.ToLower(s) {
	case "compact", "":
		return Compact, nil
	case "formatted":
		return Formatted, nil
	default:
		return Compact, fmt.Errorf("invalid spacing mode: %q (must be compact or formatted)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m SpacingMode) MarshalText() ([]byte, error) {
	if _, ok := presets[m]; !ok {
		return nil, fmt.Errorf("invalid spacing mode: %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SpacingMode) UnmarshalText(b []byte) error {
	v, err := ParseSpacingMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
