package contract

import "time"

const SchemaVersion = "v1"

type ErrorCode string

const (
	ErrGeneric          ErrorCode = "GENERIC_FAILURE"
	ErrInvalidUsage     ErrorCode = "INVALID_USAGE"
	ErrValidation       ErrorCode = "VALIDATION_FAILED"
	ErrNotFound         ErrorCode = "NOT_FOUND"
	ErrReadOnly         ErrorCode = "READ_ONLY"
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

type ErrorEnvelope struct {
	SchemaVersion string         `json:"schema_version"`
	Error         ErrorBody      `json:"error"`
	Meta          map[string]any `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Hint    string    `json:"hint,omitempty"`
}

type SuccessEnvelope struct {
	SchemaVersion string         `json:"schema_version"`
	Command       string         `json:"command"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Data          any            `json:"data"`
	Meta          map[string]any `json:"meta"`
	Warnings      []string       `json:"warnings"`
}

// Solution is the tag used for color-coding and filtering. An event carries
// exactly one tag value; "All CSAs" is a tag like the others, not a set.
type Solution string

const (
	SolutionAIBusiness Solution = "AI Business Solutions"
	SolutionCloudAI    Solution = "Cloud and AI Platforms"
	SolutionSecurity   Solution = "Security"
	SolutionAllCSAs    Solution = "All CSAs"
)

// Solutions lists the closed enumeration in display order.
var Solutions = []Solution{
	SolutionAIBusiness,
	SolutionCloudAI,
	SolutionSecurity,
	SolutionAllCSAs,
}

func KnownSolution(s Solution) bool {
	for _, v := range Solutions {
		if v == s {
			return true
		}
	}
	return false
}

// PresetLocations are the form presets; free text is still accepted.
var PresetLocations = []string{
	"Online (Teams)",
	"Seoul Office",
	"Busan Office",
	"Customer Site",
}

// Event is one marketing activity. Date fields are calendar-date strings in
// canonical YYYY-MM-DD form; EndDate empty or equal to Date means single-day,
// otherwise the event spans the inclusive range [Date, EndDate]. Time is
// display-only and never affects placement or ordering. JSON field names match
// the hosted events.json document.
type Event struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Solution      Solution `json:"solution"`
	Date          string   `json:"date"`
	EndDate       string   `json:"endDate,omitempty"`
	Time          string   `json:"time,omitempty"`
	Location      string   `json:"location"`
	RegPageURL    string   `json:"regPageUrl,omitempty"`
	VivaEngageURL string   `json:"vivaEngageUrl,omitempty"`
}

// MultiDay reports whether the event spans more than one calendar day.
func (e Event) MultiDay() bool {
	return e.EndDate != "" && e.EndDate != e.Date
}

// EndKey is the effective end date key: EndDate when present, Date otherwise.
func (e Event) EndKey() string {
	if e.EndDate != "" {
		return e.EndDate
	}
	return e.Date
}

type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
