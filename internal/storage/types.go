package storage

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// DefaultTypeColor is used when a type is created without a colour.
const DefaultTypeColor = "#3b82f6"

// TypePatch carries the fields of a type update. Nil fields are kept.
type TypePatch struct {
	Name  *string
	Color *string
}

// TypeByID returns the type with the given id.
func TypeByID(doc model.Document, id string) (model.Type, error) {
	for _, t := range doc.Types {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Type{}, fmt.Errorf("type %s: %w", id, ErrNotFound)
}

// ResolveType finds a user type by id or, failing that, by case-insensitive
// name.
func ResolveType(doc model.Document, ref string) (model.Type, error) {
	if t, err := TypeByID(doc, ref); err == nil {
		return t, nil
	}
	for _, t := range VisibleTypes(doc) {
		if strings.EqualFold(t.Name, ref) {
			return t, nil
		}
	}
	return model.Type{}, fmt.Errorf("type %q: %w", ref, ErrNotFound)
}

// VisibleTypes returns the user-defined types, system types excluded.
func VisibleTypes(doc model.Document) []model.Type {
	out := make([]model.Type, 0, len(doc.Types))
	for _, t := range doc.Types {
		if !t.IsSystem {
			out = append(out, t)
		}
	}
	return out
}

// TypeInUse reports how many entries reference the type.
func TypeInUse(doc model.Document, id string) int {
	n := 0
	for _, e := range doc.Entries {
		if e.TypeIDOrEmpty() == id {
			n++
		}
	}
	return n
}

// AddType creates a user type.
func AddType(doc *model.Document, name, color string) (model.Type, error) {
	if color == "" {
		color = DefaultTypeColor
	}
	t := model.Type{ID: timecalc.GenerateID(), Name: strings.TrimSpace(name), Color: color}
	if err := Validate(model.Document{Types: []model.Type{t}}); err != nil {
		return model.Type{}, err
	}
	doc.Types = append(doc.Types, t)
	return t, nil
}

// UpdateType renames or recolours a user type.
func UpdateType(doc *model.Document, id string, patch TypePatch) (model.Type, error) {
	i, err := userTypeIndex(doc, id)
	if err != nil {
		return model.Type{}, err
	}
	t := doc.Types[i]
	if patch.Name != nil {
		t.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		t.Color = *patch.Color
	}
	if err := Validate(model.Document{Types: []model.Type{t}}); err != nil {
		return model.Type{}, err
	}
	doc.Types[i] = t
	return t, nil
}

// DeleteType removes a user type. Entries that reference it are kept and
// show up as "Unknown".
func DeleteType(doc *model.Document, id string) error {
	i, err := userTypeIndex(doc, id)
	if err != nil {
		return err
	}
	doc.Types = append(doc.Types[:i], doc.Types[i+1:]...)
	return nil
}

func userTypeIndex(doc *model.Document, id string) (int, error) {
	for i, t := range doc.Types {
		if t.ID != id {
			continue
		}
		if t.IsSystem || t.ID == model.SystemOffDayTypeID {
			return -1, fmt.Errorf("type %s: %w", t.Name, ErrSystemType)
		}
		return i, nil
	}
	if id == model.SystemOffDayTypeID {
		return -1, fmt.Errorf("type %s: %w", id, ErrSystemType)
	}
	return -1, fmt.Errorf("type %s: %w", id, ErrNotFound)
}
