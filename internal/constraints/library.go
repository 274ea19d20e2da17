// Package constraints documents the hard rules pkg/validator enforces. It
// is read-only: unlike the pluggable, weighted constraint engines this
// domain sometimes uses, the roster validator is eight fixed rules, and
// this package exists only so operators and callers can introspect them
// through the API instead of reading the source.
package constraints

// Rule describes one of the validator's fixed hard constraints.
type Rule struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// LibraryResponse is the /api/v1/constraints/library response body.
type LibraryResponse struct {
	Rules []Rule `json:"rules"`
}

// GetLibrary returns the fixed rule catalog in the order pkg/validator.Valid
// evaluates them.
func GetLibrary() []Rule {
	return []Rule{
		{
			Name:        "availability",
			DisplayName: "Staff availability",
			Description: "A staff member cannot be assigned a shift kind on a weekday they've marked unavailable for. Defaults to available when no exception is on file.",
		},
		{
			Name:        "post_night_chain",
			DisplayName: "Night-After-Holiday chain",
			Description: "A night shift must be followed by an after-shift the next day and a holiday the day after that. No other assignment is valid in either slot.",
		},
		{
			Name:        "night_qualification",
			DisplayName: "Night qualification",
			Description: "Only regular and contract staff may be assigned a night shift.",
		},
		{
			Name:        "consecutive_work_cap",
			DisplayName: "Consecutive work day cap",
			Description: "No staff member may work more than four consecutive days.",
		},
		{
			Name:        "holiday_quota",
			DisplayName: "Monthly holiday quota",
			Description: "A staff member cannot exceed their target holiday count for the month, and cannot be assigned work that would make the quota unreachable given the days remaining.",
		},
		{
			Name:        "weekly_hours_cap",
			DisplayName: "Weekly hours cap",
			Description: "A staff member's total hours for the month cannot exceed 40 hours/week scaled to the month length (month days / 7 × 40).",
		},
		{
			Name:        "daily_staffing_ceiling",
			DisplayName: "Daily staffing ceiling",
			Description: "A shift kind cannot be staffed beyond the day's required count for that kind.",
		},
		{
			Name:        "trainee_solo",
			DisplayName: "No solo trainees",
			Description: "A trainee cannot be the first staff member assigned work on a given day.",
		},
	}
}
