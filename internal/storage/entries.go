package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// Defaults applied to new entries with blank fields.
const (
	DefaultTitle       = "Untitled Entry"
	DefaultStartTime   = "00:00"
	DefaultEndTime     = "01:00"
	DefaultOffDayTitle = "Off Day"
)

// EntryPatch carries the fields of an entry update. Nil fields are kept.
type EntryPatch struct {
	Title     *string
	TypeID    *string
	Date      *string
	EndDate   *string
	StartTime *string
	EndTime   *string
}

// AddEntry fills blank fields with defaults, derives the duration, validates
// the entry and inserts it. The entry's type must exist and must not be a
// system type.
func AddEntry(doc *model.Document, e model.Entry) (model.Entry, error) {
	if e.ID == "" {
		e.ID = timecalc.GenerateID()
	}
	if e.Title == "" {
		e.Title = DefaultTitle
	}
	if e.Date == "" {
		e.Date = timecalc.Today().String()
	}
	if e.StartTime == "" {
		e.StartTime = DefaultStartTime
	}
	if e.EndTime == "" {
		e.EndTime = DefaultEndTime
	}
	e.IsOffDay = false
	e.EndDate = ""
	if err := checkTimedType(doc, e.TypeID); err != nil {
		return model.Entry{}, err
	}
	if err := derive(&e); err != nil {
		return model.Entry{}, err
	}
	if err := ValidateEntry(e); err != nil {
		return model.Entry{}, err
	}
	doc.Entries = append(doc.Entries, e)
	SortEntries(doc.Entries)
	return e, nil
}

// AddEntries inserts a batch. Nothing is inserted if any entry is invalid.
func AddEntries(doc *model.Document, entries []model.Entry) ([]model.Entry, error) {
	staged := model.Document{Types: doc.Types, Entries: append([]model.Entry(nil), doc.Entries...)}
	added := make([]model.Entry, 0, len(entries))
	for i, e := range entries {
		var (
			got model.Entry
			err error
		)
		if e.IsOffDay {
			got, err = AddOffDay(&staged, e.Title, e.Date, e.EndDate)
		} else {
			got, err = AddEntry(&staged, e)
		}
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		added = append(added, got)
	}
	doc.Types, doc.Entries = staged.Types, staged.Entries
	return added, nil
}

// AddOffDay records a single off day, or an inclusive range when through is
// set and differs from date.
func AddOffDay(doc *model.Document, title, date, through string) (model.Entry, error) {
	if title == "" {
		title = DefaultOffDayTitle
	}
	if date == "" {
		date = timecalc.Today().String()
	}
	e := model.Entry{
		ID:        timecalc.GenerateID(),
		Title:     title,
		TypeID:    model.StrPtr(model.SystemOffDayTypeID),
		Date:      date,
		StartTime: "00:00",
		EndTime:   "00:00",
		IsOffDay:  true,
	}
	if through != "" && through != date {
		e.EndDate = through
	}
	if err := derive(&e); err != nil {
		return model.Entry{}, err
	}
	if err := ValidateEntry(e); err != nil {
		return model.Entry{}, err
	}
	EnsureSystemTypes(doc)
	doc.Entries = append(doc.Entries, e)
	SortEntries(doc.Entries)
	return e, nil
}

// UpdateEntry applies patch to the entry with the given id and re-derives its
// duration.
func UpdateEntry(doc *model.Document, id string, patch EntryPatch) (model.Entry, error) {
	i := entryIndex(doc, id)
	if i < 0 {
		return model.Entry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	e := doc.Entries[i]
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.StartTime != nil {
		e.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		e.EndTime = *patch.EndTime
	}
	if e.IsOffDay {
		if patch.EndDate != nil {
			e.EndDate = *patch.EndDate
			if e.EndDate == e.Date {
				e.EndDate = ""
			}
		}
	} else if patch.TypeID != nil {
		if err := checkTimedType(doc, patch.TypeID); err != nil {
			return model.Entry{}, err
		}
		e.TypeID = patch.TypeID
	}
	if err := derive(&e); err != nil {
		return model.Entry{}, err
	}
	if err := ValidateEntry(e); err != nil {
		return model.Entry{}, err
	}
	doc.Entries[i] = e
	SortEntries(doc.Entries)
	return e, nil
}

// DeleteEntry removes the entry with the given id.
func DeleteEntry(doc *model.Document, id string) error {
	i := entryIndex(doc, id)
	if i < 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	doc.Entries = append(doc.Entries[:i], doc.Entries[i+1:]...)
	return nil
}

// EntryByID returns the entry with the given id.
func EntryByID(doc model.Document, id string) (model.Entry, error) {
	i := entryIndex(&doc, id)
	if i < 0 {
		return model.Entry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return doc.Entries[i], nil
}

// ResolveEntry finds an entry by its full id or by a unique id prefix.
func ResolveEntry(doc model.Document, ref string) (model.Entry, error) {
	if ref == "" {
		return model.Entry{}, fmt.Errorf("entry id is required: %w", ErrNotFound)
	}
	if e, err := EntryByID(doc, ref); err == nil {
		return e, nil
	}
	var match []model.Entry
	for _, e := range doc.Entries {
		if strings.HasPrefix(e.ID, ref) {
			match = append(match, e)
		}
	}
	switch len(match) {
	case 0:
		return model.Entry{}, fmt.Errorf("entry %s: %w", ref, ErrNotFound)
	case 1:
		return match[0], nil
	}
	return model.Entry{}, fmt.Errorf("entry %s: %w (%d entries share the prefix)", ref, ErrAmbiguous, len(match))
}

// SortEntries orders entries newest first by date, then start time.
func SortEntries(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a := entries[i].Date + " " + entries[i].StartTime
		b := entries[j].Date + " " + entries[j].StartTime
		return a > b
	})
}

// derive recomputes the stored duration. Off days always store 0 and their
// range must not run backwards.
func derive(e *model.Entry) error {
	if e.IsOffDay {
		e.DurationMinutes = 0
		if e.EndDate != "" && e.EndDate < e.Date {
			return fmt.Errorf("%w: off-day range %s..%s ends before it starts", ErrInvalidDocument, e.Date, e.EndDate)
		}
		return nil
	}
	d, err := timecalc.CalculateDuration(e.StartTime, e.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	e.DurationMinutes = d
	return nil
}

func checkTimedType(doc *model.Document, typeID *string) error {
	if typeID == nil || *typeID == "" {
		return fmt.Errorf("%w: entry type is required", ErrInvalidDocument)
	}
	t, err := TypeByID(*doc, *typeID)
	if err != nil {
		return err
	}
	if t.IsSystem {
		return fmt.Errorf("type %s: %w", t.Name, ErrSystemType)
	}
	return nil
}

func entryIndex(doc *model.Document, id string) int {
	for i, e := range doc.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
