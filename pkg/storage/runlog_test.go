package storage

import (
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain"
)

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		t.Fatal(err)
	}
}

func TestRecordAndLoadRuns(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.RunRecord
	}{
		{"empty", nil},
		{"single", []domain.RunRecord{{ID: "r1", Module: "health"}}},
		{"multiple", []domain.RunRecord{
			{ID: "r1", Module: "health"},
			{ID: "r2", Module: "delays"},
			{ID: "r3", Module: "report"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)

			for _, rec := range tt.records {
				if err := repo.RecordRun(rec); err != nil {
					t.Fatalf("RecordRun: %v", err)
				}
			}

			loaded, err := repo.LoadRuns()
			if err != nil {
				t.Fatalf("LoadRuns: %v", err)
			}
			if len(loaded) != len(tt.records) {
				t.Errorf("expected %d records, got %d", len(tt.records), len(loaded))
			}
			for i, rec := range tt.records {
				if loaded[i].ID != rec.ID {
					t.Errorf("record[%d] ID = %s, want %s", i, loaded[i].ID, rec.ID)
				}
				if loaded[i].Module != rec.Module {
					t.Errorf("record[%d] Module = %s, want %s", i, loaded[i].Module, rec.Module)
				}
			}
		})
	}
}

func TestLoadRuns_MissingFile(t *testing.T) {
	repo := newTestRepo(t)

	records, err := repo.LoadRuns()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty log, got %d records", len(records))
	}
}

func TestRunRecordHashChain(t *testing.T) {
	repo := newTestRepo(t)

	first := domain.RunRecord{
		ID:        "r1",
		Timestamp: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Module:    "health",
		Metadata:  map[string]interface{}{"overall": 82},
	}
	first.Hash = first.CalculateHash()

	second := domain.RunRecord{
		ID:        "r2",
		Timestamp: time.Date(2026, 3, 10, 12, 0, 1, 0, time.UTC),
		Module:    "risk",
		PrevHash:  first.Hash,
	}
	second.Hash = second.CalculateHash()

	if err := repo.RecordRun(first); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordRun(second); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.LoadRuns()
	if err != nil {
		t.Fatalf("LoadRuns: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(loaded))
	}
	if loaded[1].PrevHash != loaded[0].Hash {
		t.Error("expected second record to chain to first")
	}
	if got := loaded[1].CalculateHash(); got != loaded[1].Hash {
		t.Errorf("recomputed hash %s != stored %s", got, loaded[1].Hash)
	}
}

func TestRecordRun_SkipsMalformedLines(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.RecordRun(domain.RunRecord{ID: "r1", Module: "health"}); err != nil {
		t.Fatal(err)
	}

	path, err := repo.ResolvePath(RunsFile)
	if err != nil {
		t.Fatal(err)
	}
	appendLine(t, path, "not json\n")

	if err := repo.RecordRun(domain.RunRecord{ID: "r2", Module: "risk"}); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.LoadRuns()
	if err != nil {
		t.Fatalf("LoadRuns: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("expected 2 valid records, got %d", len(loaded))
	}
}
