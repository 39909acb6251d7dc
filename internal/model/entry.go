package model

// Entry is a single logged activity or an off-day marker.
// Field names follow the document format shared with the browser app.
type Entry struct {
	ID              string  `json:"id" yaml:"id" validate:"required"`
	Title           string  `json:"title" yaml:"title" validate:"required"`
	TypeID          *string `json:"typeId" yaml:"typeId" validate:"required_unless=IsOffDay true"`
	Date            string  `json:"date" yaml:"date" validate:"required,day"`
	EndDate         string  `json:"endDate,omitempty" yaml:"endDate,omitempty" validate:"omitempty,day"`
	StartTime       string  `json:"startTime" yaml:"startTime" validate:"required_unless=IsOffDay true,omitempty,clock"`
	EndTime         string  `json:"endTime" yaml:"endTime" validate:"required_unless=IsOffDay true,omitempty,clock"`
	DurationMinutes int     `json:"durationMinutes" yaml:"durationMinutes" validate:"min=0"`
	IsOffDay        bool    `json:"isOffDay" yaml:"isOffDay"`
}

// Kind is implemented by Timed and OffDay. Callers switch on the concrete
// type instead of testing IsOffDay.
type Kind interface {
	isKind()
}

// Timed is a regular entry that contributes minutes to its type.
type Timed struct {
	TypeID  string
	Minutes int
}

// OffDay covers the inclusive date range From..Through.
// Through equals From for single-day entries.
type OffDay struct {
	From    string
	Through string
}

func (Timed) isKind()  {}
func (OffDay) isKind() {}

// Kind returns the variant this entry represents.
func (e Entry) Kind() Kind {
	if e.IsOffDay {
		through := e.Date
		if e.EndDate != "" {
			through = e.EndDate
		}
		return OffDay{From: e.Date, Through: through}
	}
	return Timed{TypeID: e.TypeIDOrEmpty(), Minutes: e.DurationMinutes}
}

// TypeIDOrEmpty returns the type id or "" when the entry has none.
func (e Entry) TypeIDOrEmpty() string {
	if e.TypeID == nil {
		return ""
	}
	return *e.TypeID
}

// IsRange reports whether the entry spans more than one day.
func (e Entry) IsRange() bool {
	return e.EndDate != "" && e.EndDate != e.Date
}

// StrPtr returns a pointer to s. Handy for building entries with a type id.
func StrPtr(s string) *string {
	return &s
}
