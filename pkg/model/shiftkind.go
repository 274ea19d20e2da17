package model

import "fmt"

// ShiftKind is the closed set of shift kinds a draft cell can hold.
// It is a sum type, not a free-form string: anything read from storage or
// the wire is translated through ParseShiftKind, and anything written out
// goes through String. Internal code never compares against a kanji token.
type ShiftKind int

const (
	Early ShiftKind = iota
	Day1
	Day2
	Middle
	Late
	Night
	After
	Holiday
	Paid

	// Unassigned marks a draft cell that has not been written yet. It is
	// not a member of the wire enumeration and never round-trips.
	Unassigned ShiftKind = -1
)

var shiftKindTokens = [...]string{
	Early:   "早",
	Day1:    "日1",
	Day2:    "日2",
	Middle:  "中",
	Late:    "遅",
	Night:   "夜",
	After:   "明",
	Holiday: "休",
	Paid:    "有",
}

// String renders the wire token for a shift kind.
func (k ShiftKind) String() string {
	if k == Unassigned {
		return ""
	}
	if k < 0 || int(k) >= len(shiftKindTokens) {
		return "?"
	}
	return shiftKindTokens[k]
}

// ParseShiftKind translates a wire token into a ShiftKind.
func ParseShiftKind(token string) (ShiftKind, error) {
	for k, t := range shiftKindTokens {
		if t == token {
			return ShiftKind(k), nil
		}
	}
	return Unassigned, fmt.Errorf("model: unknown shift kind token %q", token)
}

// MarshalText implements encoding.TextMarshaler so a ShiftKind round-trips
// through JSON (including as a map key) as its kanji wire token rather
// than its underlying int.
func (k ShiftKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, the counterpart to
// MarshalText.
func (k *ShiftKind) UnmarshalText(text []byte) error {
	parsed, err := ParseShiftKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// AllShiftKinds lists every candidate kind a cell may be assigned, in the
// fixed order the slot orderer and value scorer both iterate.
var AllShiftKinds = []ShiftKind{Early, Day1, Day2, Middle, Late, Night, Holiday, After}

// WorkKinds is the subset of shift kinds that count as a worked shift.
var WorkKinds = map[ShiftKind]bool{
	Early:  true,
	Day1:   true,
	Day2:   true,
	Middle: true,
	Late:   true,
	Night:  true,
}

// IsWork reports whether a kind counts toward worked-day and hours totals.
func (k ShiftKind) IsWork() bool {
	return WorkKinds[k]
}

// Hours returns the hours a single assignment of this kind contributes.
// Every work kind is 8 hours except night, which spans into the following
// day and counts as 16.
func (k ShiftKind) Hours() float64 {
	switch {
	case k == Night:
		return 16
	case k.IsWork():
		return 8
	default:
		return 0
	}
}
