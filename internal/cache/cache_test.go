package cache

import (
	"testing"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// ============================================================
// Initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	c := newTestCache(t)
	var version int
	c.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPathAndReopen(t *testing.T) {
	path := t.TempDir() + "/sub/cache.db"
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetFileName("work.json"); err != nil {
		t.Fatal(err)
	}
	c.Close()

	c, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()
	name, err := c.FileName()
	if err != nil || name != "work.json" {
		t.Errorf("FileName after reopen = %q, %v", name, err)
	}
}

// ============================================================
// Document
// ============================================================

func TestEmptyCacheYieldsFreshDocument(t *testing.T) {
	c := newTestCache(t)
	ok, err := c.HasDocument()
	if err != nil || ok {
		t.Fatalf("HasDocument = %v, %v", ok, err)
	}
	doc, err := c.Document()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 0 || len(doc.Types) != 1 || doc.Types[0].ID != model.SystemOffDayTypeID {
		t.Errorf("fresh document = %+v", doc)
	}
	if _, ok, _ := c.SavedAt(); ok {
		t.Error("SavedAt reported a time without a document")
	}
}

func TestSaveAndLoadDocument(t *testing.T) {
	c := newTestCache(t)
	doc := model.Document{
		Types: []model.Type{{ID: "t1", Name: "Work", Color: "#fff"}, model.OffDayType()},
		Entries: []model.Entry{{
			ID: "e1", Title: "x", TypeID: model.StrPtr("t1"), Date: "2024-01-05",
			StartTime: "09:00", EndTime: "10:00", DurationMinutes: 60,
		}},
	}
	if err := c.SaveDocument(doc); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	got, err := c.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].ID != "e1" || len(got.Types) != 2 {
		t.Errorf("round trip = %+v", got)
	}
	if _, ok, err := c.SavedAt(); !ok || err != nil {
		t.Errorf("SavedAt = %v, %v", ok, err)
	}

	doc.Entries = nil
	if err := c.SaveDocument(doc); err != nil {
		t.Fatal(err)
	}
	got, _ = c.Document()
	if len(got.Entries) != 0 {
		t.Error("overwrite did not replace entries")
	}
}

// ============================================================
// Filter and file name
// ============================================================

func TestFilterPersistence(t *testing.T) {
	c := newTestCache(t)
	f, err := c.Filter()
	if err != nil || !f.IsZero() {
		t.Fatalf("initial filter = %+v, %v", f, err)
	}
	want := model.Filter{TypeID: "t1", DateStart: "2024-01-01"}
	if err := c.SaveFilter(want); err != nil {
		t.Fatal(err)
	}
	got, err := c.Filter()
	if err != nil || got != want {
		t.Errorf("Filter = %+v, %v, want %+v", got, err, want)
	}
}

func TestFileNameDefault(t *testing.T) {
	c := newTestCache(t)
	name, err := c.FileName()
	if err != nil || name != DefaultFileName {
		t.Errorf("FileName = %q, %v", name, err)
	}
}

func TestClear(t *testing.T) {
	c := newTestCache(t)
	_ = c.SaveDocument(model.Document{})
	_ = c.SaveFilter(model.Filter{TypeID: "x"})
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := c.HasDocument(); ok {
		t.Error("document survived Clear")
	}
	if f, _ := c.Filter(); !f.IsZero() {
		t.Error("filter survived Clear")
	}
}
