package onedrive

import (
	"context"
	"fmt"
	"io"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
)

// SyncResult counts how the target document changes when the source
// replaces it.
type SyncResult struct {
	Added     int
	Updated   int
	Removed   int
	Unchanged int
	Types     int
}

// Changed reports whether anything differs.
func (r SyncResult) Changed() bool {
	return r.Added+r.Updated+r.Removed+r.Types > 0
}

// Compare matches entries by id and counts the differences between target
// and source. Types counts added, removed or edited types.
func Compare(target, source model.Document) SyncResult {
	var r SyncResult
	old := make(map[string]model.Entry, len(target.Entries))
	for _, e := range target.Entries {
		old[e.ID] = e
	}
	for _, e := range source.Entries {
		prev, ok := old[e.ID]
		switch {
		case !ok:
			r.Added++
		case !sameEntry(prev, e):
			r.Updated++
		default:
			r.Unchanged++
		}
		delete(old, e.ID)
	}
	r.Removed = len(old)

	oldTypes := make(map[string]model.Type, len(target.Types))
	for _, t := range target.Types {
		oldTypes[t.ID] = t
	}
	for _, t := range source.Types {
		if prev, ok := oldTypes[t.ID]; !ok || prev != t {
			r.Types++
		}
		delete(oldTypes, t.ID)
	}
	r.Types += len(oldTypes)
	return r
}

func sameEntry(a, b model.Entry) bool {
	return a.Title == b.Title &&
		a.TypeIDOrEmpty() == b.TypeIDOrEmpty() &&
		a.Date == b.Date &&
		a.EndDate == b.EndDate &&
		a.StartTime == b.StartTime &&
		a.EndTime == b.EndTime &&
		a.DurationMinutes == b.DurationMinutes &&
		a.IsOffDay == b.IsOffDay
}

// Pull downloads the remote document and reports how it differs from local.
// found is false when OneDrive has no document yet; local is then returned
// unchanged.
func Pull(ctx context.Context, c *Client, local model.Document) (doc model.Document, result SyncResult, found bool, err error) {
	remote, found, err := c.Download(ctx)
	if err != nil {
		return local, SyncResult{}, false, err
	}
	if !found {
		return local, SyncResult{}, false, nil
	}
	return remote, Compare(local, remote), true, nil
}

// Push uploads local, replacing the remote document, and reports how the
// remote copy changed. With dryRun nothing is uploaded.
func Push(ctx context.Context, c *Client, local model.Document, dryRun bool) (SyncResult, error) {
	remote, _, err := c.Download(ctx)
	if err != nil {
		return SyncResult{}, err
	}
	result := Compare(remote, local)
	if dryRun {
		return result, nil
	}
	if err := c.Upload(ctx, local); err != nil {
		return SyncResult{}, err
	}
	return result, nil
}

// PrintResult writes the counters in the same style as the other commands.
func PrintResult(w io.Writer, r SyncResult) {
	fmt.Fprintf(w, "  ✓ Added:     %d\n", r.Added)
	fmt.Fprintf(w, "  ↑ Updated:   %d\n", r.Updated)
	fmt.Fprintf(w, "  ✗ Removed:   %d\n", r.Removed)
	fmt.Fprintf(w, "  – Unchanged: %d\n", r.Unchanged)
	if r.Types > 0 {
		fmt.Fprintf(w, "  ↑ Types:     %d changed\n", r.Types)
	}
}
