package model

// Gender is recorded because the value scorer's fairness bonuses (the
// facility's "bathing day" staffing convention) are gender-conditioned.
type Gender string

const (
	Male        Gender = "male"
	Female      Gender = "female"
	Unspecified Gender = "unspecified"
)

// EmploymentType gates night-shift eligibility (rule 3) and the weekly
// hours cap is the same for everyone, but only regular and contract staff
// may ever be handed a night shift.
type EmploymentType string

const (
	Regular  EmploymentType = "regular"
	Contract EmploymentType = "contract"
	PartTime EmploymentType = "part-time"
	Other    EmploymentType = "other"
)

// Experience distinguishes trainees, who may never be the sole worker on a
// date (rule 8), from everyone else.
type Experience string

const (
	Veteran        Experience = "veteran"
	ExperienceRegular Experience = "regular"
	Trainee        Experience = "trainee"
)

// AvailabilityEntry overrides the default-available assumption for a given
// weekday and shift kind. Absence of an entry for a (weekday, kind) pair
// means available; at most one entry exists per (staff, weekday, kind).
type AvailabilityEntry struct {
	DayOfWeek   int       `json:"day_of_week" db:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	ShiftKind   ShiftKind `json:"shift_kind" db:"-"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
}

// Staff is a worker the roster is built for. A Staff snapshot is taken
// immutably at the start of a solve; nothing during the solve mutates it.
type Staff struct {
	BaseModel
	Name           string              `json:"name" db:"name"`
	Gender         Gender              `json:"gender" db:"gender"`
	EmploymentType EmploymentType      `json:"employment_type" db:"employment_type"`
	Experience     Experience          `json:"experience" db:"experience"`
	Availability   []AvailabilityEntry `json:"availability,omitempty"`
}

// IsAvailable reports whether s is available for kind on the given weekday,
// defaulting to true when no entry overrides it.
func (s *Staff) IsAvailable(dayOfWeek int, kind ShiftKind) bool {
	for _, e := range s.Availability {
		if e.DayOfWeek == dayOfWeek && e.ShiftKind == kind {
			return e.IsAvailable
		}
	}
	return true
}

// NightQualified reports whether s may ever be assigned a night shift:
// only regular and contract employment types qualify.
func (s *Staff) NightQualified() bool {
	return s.EmploymentType == Regular || s.EmploymentType == Contract
}
