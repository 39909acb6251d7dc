package analytics_test

import "github.com/Tiliavir/typed-time-tracker/internal/model"

func timed(id, typeID, date string, minutes int) model.Entry {
	return model.Entry{
		ID:              id,
		Title:           "entry " + id,
		TypeID:          model.StrPtr(typeID),
		Date:            date,
		StartTime:       "09:00",
		EndTime:         "10:00",
		DurationMinutes: minutes,
	}
}

func offDay(id, from, through string, minutes int) model.Entry {
	return model.Entry{
		ID:              id,
		Title:           "Off",
		TypeID:          model.StrPtr(model.SystemOffDayTypeID),
		Date:            from,
		EndDate:         through,
		StartTime:       "00:00",
		EndTime:         "00:00",
		DurationMinutes: minutes,
		IsOffDay:        true,
	}
}

func testTypes() []model.Type {
	return []model.Type{
		{ID: "A", Name: "Alpha", Color: "#ff0000"},
		{ID: "B", Name: "beta", Color: "#00ff00"},
		model.OffDayType(),
	}
}

func ids(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
