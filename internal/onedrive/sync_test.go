package onedrive_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/onedrive"
)

func TestCompare(t *testing.T) {
	local := sampleDoc()
	remote := sampleDoc()
	remote.Entries[0].Title = "Refactoring"
	remote.Entries = append(remote.Entries, model.Entry{
		ID: "e2", Title: "Holiday", Date: "2024-01-06", IsOffDay: true,
	})
	local.Entries = append(local.Entries, model.Entry{
		ID: "gone", Title: "x", TypeID: model.StrPtr("t1"), Date: "2024-01-01", StartTime: "09:00", EndTime: "10:00",
	})
	remote.Types[0].Color = "#000000"

	got := onedrive.Compare(local, remote)
	want := onedrive.SyncResult{Added: 1, Updated: 1, Removed: 1, Types: 1}
	if got != want {
		t.Errorf("Compare = %+v, want %+v", got, want)
	}
	if !got.Changed() {
		t.Error("Changed() = false")
	}
	if same := onedrive.Compare(sampleDoc(), sampleDoc()); same.Changed() || same.Unchanged != 1 {
		t.Errorf("identical documents: %+v", same)
	}
}

func TestPullWithoutRemoteKeepsLocal(t *testing.T) {
	c := newClient(t, &fakeDrive{})
	local := sampleDoc()
	doc, _, found, err := onedrive.Pull(context.Background(), c, local)
	if err != nil || found {
		t.Fatalf("Pull = %v, %v", found, err)
	}
	if len(doc.Entries) != 1 {
		t.Error("local document not returned")
	}
}

func TestPushDryRunDoesNotUpload(t *testing.T) {
	drive := &fakeDrive{}
	c := newClient(t, drive)

	result, err := onedrive.Push(context.Background(), c, sampleDoc(), true)
	if err != nil {
		t.Fatal(err)
	}
	if drive.puts != 0 {
		t.Error("dry run uploaded")
	}
	if result.Added != 1 {
		t.Errorf("result = %+v", result)
	}

	if _, err := onedrive.Push(context.Background(), c, sampleDoc(), false); err != nil {
		t.Fatal(err)
	}
	if drive.puts != 1 {
		t.Errorf("puts = %d, want 1", drive.puts)
	}

	doc, result, found, err := onedrive.Pull(context.Background(), c, model.Document{})
	if err != nil || !found {
		t.Fatalf("Pull = %v, %v", found, err)
	}
	if result.Added != 1 || len(doc.Entries) != 1 {
		t.Errorf("pull result = %+v", result)
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	onedrive.PrintResult(&buf, onedrive.SyncResult{Added: 2, Types: 1})
	out := buf.String()
	if !strings.Contains(out, "✓ Added:     2") || !strings.Contains(out, "Types:     1 changed") {
		t.Errorf("output = %q", out)
	}
}
