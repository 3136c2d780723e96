package application

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/felixgeelhaar/pulse/pkg/domain"
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

const snapshotSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "status"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "title": { "type": "string" },
          "status": { "enum": ["pending", "in_progress", "blocked", "completed"] },
          "priority": { "enum": ["low", "medium", "high"] },
          "due_date": { "type": "string", "format": "date-time" },
          "estimated_hours": { "type": "number", "minimum": 0 },
          "tracked_hours": { "type": "number", "minimum": 0 },
          "story_points": { "type": "integer", "minimum": 0 },
          "assignee_id": { "type": "string" },
          "sprint_id": { "type": "string" }
        }
      }
    },
    "sprints": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "start_date", "end_date"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "name": { "type": "string" },
          "status": { "enum": ["planned", "active", "completed"] },
          "start_date": { "type": "string", "format": "date-time" },
          "end_date": { "type": "string", "format": "date-time" }
        }
      }
    },
    "members": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["user_id", "name"],
        "properties": {
          "user_id": { "type": "string", "minLength": 1 },
          "name": { "type": "string" },
          "role": { "type": "string" }
        }
      }
    },
    "time_off": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["member_id", "start_date", "end_date"],
        "properties": {
          "member_id": { "type": "string", "minLength": 1 },
          "start_date": { "type": "string", "format": "date-time" },
          "end_date": { "type": "string", "format": "date-time" },
          "hours_per_day": { "type": "number", "minimum": 0 }
        }
      }
    }
  }
}`

var snapshotSchemaLoader = gojsonschema.NewStringLoader(snapshotSchemaJSON)

// snapshotDocument is the wire form of an imported or exported snapshot.
type snapshotDocument struct {
	Tasks           []project.Task             `json:"tasks,omitempty"`
	Sprints         []project.Sprint           `json:"sprints,omitempty"`
	Members         []project.Member           `json:"members,omitempty"`
	TimeOff         []project.TimeOff          `json:"time_off,omitempty"`
	VelocityHistory *analytics.VelocityHistory `json:"velocity_history,omitempty"`
}

// SnapshotService imports and exports the project snapshot as JSON.
// Imports are schema-validated before anything is written.
type SnapshotService struct {
	repo domain.SnapshotRepository
}

func NewSnapshotService(repo domain.SnapshotRepository) *SnapshotService {
	return &SnapshotService{repo: repo}
}

// Validate checks a snapshot document against the schema and returns
// one description per violation. An empty slice means the document is
// valid.
func (s *SnapshotService) Validate(data []byte) ([]string, error) {
	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(snapshotSchemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}

// Import validates and persists a snapshot document, replacing the
// stored artifacts it carries. Sections absent from the document are
// left untouched.
func (s *SnapshotService) Import(data []byte) error {
	violations, err := s.Validate(data)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("snapshot is invalid: %s", violations[0])
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	if doc.Tasks != nil {
		if err := s.repo.SaveTasks(doc.Tasks); err != nil {
			return fmt.Errorf("save tasks: %w", err)
		}
	}
	if doc.Sprints != nil {
		if err := s.repo.SaveSprints(doc.Sprints); err != nil {
			return fmt.Errorf("save sprints: %w", err)
		}
	}
	if doc.Members != nil {
		if err := s.repo.SaveRoster(&project.Roster{Members: doc.Members}); err != nil {
			return fmt.Errorf("save roster: %w", err)
		}
	}
	if doc.TimeOff != nil {
		if err := s.repo.SaveTimeOff(doc.TimeOff); err != nil {
			return fmt.Errorf("save time off: %w", err)
		}
	}
	if doc.VelocityHistory != nil {
		if err := s.repo.SaveVelocityHistory(doc.VelocityHistory); err != nil {
			return fmt.Errorf("save velocity history: %w", err)
		}
	}

	return nil
}

// Export serializes the stored snapshot to indented JSON.
func (s *SnapshotService) Export() ([]byte, error) {
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	sprints, err := s.repo.LoadSprints()
	if err != nil {
		return nil, fmt.Errorf("load sprints: %w", err)
	}
	roster, err := s.repo.LoadRoster()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	timeOff, err := s.repo.LoadTimeOff()
	if err != nil {
		return nil, fmt.Errorf("load time off: %w", err)
	}
	history, err := s.repo.LoadVelocityHistory()
	if err != nil {
		return nil, fmt.Errorf("load velocity history: %w", err)
	}

	doc := snapshotDocument{
		Tasks:           tasks,
		Sprints:         sprints,
		Members:         roster.Members,
		TimeOff:         timeOff,
		VelocityHistory: history,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}
