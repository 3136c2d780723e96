// Package domain holds the cross-cutting contracts of pulse: the
// snapshot repository port and the engine run log.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// RunRecord captures one engine invocation for the replay log. Records
// are hash-chained so a tampered log is detectable.
type RunRecord struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Module    string                 `json:"module"` // "health", "delays", "sprint", "risk", "capacity", "report"
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	PrevHash  string                 `json:"prev_hash,omitempty"`
	Hash      string                 `json:"hash,omitempty"`
}

// CalculateHash generates a deterministic SHA256 hash of the record.
func (r *RunRecord) CalculateHash() string {
	h := sha256.New()
	h.Write([]byte(r.PrevHash))
	h.Write([]byte(r.ID))
	h.Write([]byte(r.Timestamp.Format(time.RFC3339Nano)))
	h.Write([]byte(r.Module))
	h.Write([]byte(canonicalJSON(r.Metadata)))
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalJSON produces a deterministic JSON representation of
// metadata. Keys are sorted so hashing is stable.
func canonicalJSON(m map[string]interface{}) string {
	if len(m) == 0 {
		return ""
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]byte, 0, 256)
	out = append(out, '{')
	for i, k := range keys {
		if i > 0 {
			out = append(out, ',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, _ := json.Marshal(m[k])
		out = append(out, keyJSON...)
		out = append(out, ':')
		out = append(out, valJSON...)
	}
	out = append(out, '}')
	return string(out)
}

// RunLogger records engine invocations.
type RunLogger interface {
	Record(module string, metadata map[string]interface{}) error
}
