package model

// Document is the persisted shape: every type and entry the user owns.
type Document struct {
	Types   []Type  `json:"types" yaml:"types" validate:"dive"`
	Entries []Entry `json:"entries" yaml:"entries" validate:"dive"`
}

// Filter narrows the entry table and all aggregates.
// Empty fields mean "no restriction".
type Filter struct {
	TypeID    string `json:"typeId" yaml:"typeId"`
	DateStart string `json:"dateStart" yaml:"dateStart"`
	DateEnd   string `json:"dateEnd" yaml:"dateEnd"`
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.TypeID == "" && f.DateStart == "" && f.DateEnd == ""
}
