package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/pixelhost/internal/platform"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	_, err = store.SaveRun("gradient", "window", platform.Stats{
		Frames:          3600,
		SimSeconds:      60.0,
		MaxFrameSeconds: 0.021,
		Reloads:         2,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	_, err = store.SaveRun("bounce", "terminal", platform.Stats{
		Frames:           180,
		SimSeconds:       6.0,
		UnderrunWarnings: 4,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	records, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("RecentRuns() returned %d records, expected 2", len(records))
	}

	// Most recent first
	if records[0].SimID != "bounce" {
		t.Errorf("records[0].SimID = %q, expected %q", records[0].SimID, "bounce")
	}
	if records[1].SimID != "gradient" {
		t.Errorf("records[1].SimID = %q, expected %q", records[1].SimID, "gradient")
	}
	if records[1].Frames != 3600 {
		t.Errorf("records[1].Frames = %d, expected 3600", records[1].Frames)
	}
	if records[1].MaxFrameMillis != 21.0 {
		t.Errorf("records[1].MaxFrameMillis = %v, expected 21.0", records[1].MaxFrameMillis)
	}
	if records[1].Reloads != 2 {
		t.Errorf("records[1].Reloads = %d, expected 2", records[1].Reloads)
	}
}

func TestStoreSummaries(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, stats := range []platform.Stats{
		{Frames: 100, SimSeconds: 1.6, MaxFrameSeconds: 0.017},
		{Frames: 200, SimSeconds: 3.3, MaxFrameSeconds: 0.030, UnderrunWarnings: 1},
	} {
		if _, err := store.SaveRun("gradient", "window", stats); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun("bounce", "none", platform.Stats{Frames: 50}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	summaries, err := store.Summaries()
	if err != nil {
		t.Fatalf("Summaries() failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Summaries() returned %d entries, expected 2", len(summaries))
	}

	// gradient has underruns, so it sorts first
	g := summaries[0]
	if g.SimID != "gradient" {
		t.Fatalf("summaries[0].SimID = %q, expected %q", g.SimID, "gradient")
	}
	if g.Runs != 2 {
		t.Errorf("gradient Runs = %d, expected 2", g.Runs)
	}
	if g.TotalFrames != 300 {
		t.Errorf("gradient TotalFrames = %d, expected 300", g.TotalFrames)
	}
	if g.WorstFrameMillis != 30.0 {
		t.Errorf("gradient WorstFrameMillis = %v, expected 30.0", g.WorstFrameMillis)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRun("gradient", "window", platform.Stats{Frames: 1}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.ClearRuns("gradient"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	records, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("RecentRuns() after clear returned %d records, expected 0", len(records))
	}
}
