package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/pulse/pkg/domain"
)

// RecordRun appends a run record to the jsonl log.
func (r *FilesystemRepository) RecordRun(record domain.RunRecord) error {
	path, err := r.ResolvePath(RunsFile)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	data = append(data, '\n')

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open runs file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}

	return nil
}

// LoadRuns reads the full run log in recorded order.
func (r *FilesystemRepository) LoadRuns() ([]domain.RunRecord, error) {
	path, err := r.ResolvePath(RunsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.RunRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read runs file: %w", err)
	}

	var records []domain.RunRecord
	lines := bytes.Split(data, []byte("\n"))
	for _, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var rec domain.RunRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue // Skip malformed lines
		}
		records = append(records, rec)
	}

	return records, nil
}
