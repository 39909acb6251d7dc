package model

// SystemOffDayTypeID is the reserved type that off-day entries reference.
const SystemOffDayTypeID = "SYSTEM_OFF_DAY"

// Type is a user-defined category entries are tagged with.
type Type struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Name     string `json:"name" yaml:"name" validate:"required"`
	Color    string `json:"color" yaml:"color" validate:"required"`
	IsSystem bool   `json:"isSystem,omitempty" yaml:"isSystem,omitempty"`
}

// OffDayType returns the system type used to tag off days.
func OffDayType() Type {
	return Type{
		ID:       SystemOffDayTypeID,
		Name:     "Off Day",
		Color:    "#cccccc",
		IsSystem: true,
	}
}
