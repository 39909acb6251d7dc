package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
)

var (
	// ErrNotFound is returned when an entry or type id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSystemType is returned when a mutation targets a system type.
	ErrSystemType = errors.New("system types cannot be changed")
	// ErrAmbiguous is returned when an id prefix matches several entries.
	ErrAmbiguous = errors.New("ambiguous id")
	// ErrInvalidDocument wraps every validation failure.
	ErrInvalidDocument = errors.New("invalid document")
)

// BaseDir returns the root data directory (~/.ttt).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttt"), nil
}

// Decode parses and validates a document. A missing types array is treated
// as empty and the off-day system type is added when absent.
func Decode(data []byte) (model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Types == nil {
		doc.Types = []model.Type{}
	}
	if doc.Entries == nil {
		doc.Entries = []model.Entry{}
	}
	if err := Validate(doc); err != nil {
		return model.Document{}, err
	}
	EnsureSystemTypes(&doc)
	return doc, nil
}

// Encode renders doc as indented JSON, the format the browser app reads.
func Encode(doc model.Document) ([]byte, error) {
	if doc.Types == nil {
		doc.Types = []model.Type{}
	}
	if doc.Entries == nil {
		doc.Entries = []model.Entry{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	return data, nil
}

// Load reads a document file. Unparseable JSON is moved aside to
// <path>.corrupt so the next save does not overwrite it silently.
func Load(path string) (model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	if !json.Valid(data) {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.Document{}, fmt.Errorf("%w: corrupt JSON in %s (backed up to %s)", ErrInvalidDocument, path, backupPath)
	}
	doc, err := Decode(data)
	if err != nil {
		return model.Document{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return doc, nil
}

// Save atomically writes doc to path.
func Save(path string, doc model.Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("storage error creating directories: %w", err)
		}
	}

	data, err := Encode(doc)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// EnsureSystemTypes adds the off-day type when the document lacks it.
func EnsureSystemTypes(doc *model.Document) {
	for _, t := range doc.Types {
		if t.ID == model.SystemOffDayTypeID {
			return
		}
	}
	doc.Types = append(doc.Types, model.OffDayType())
}
