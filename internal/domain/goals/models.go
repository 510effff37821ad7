package goals

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// KeyResult is one sub-objective of a goal. Its identity is its position in
// the goal's key-result sequence; there is no separate key-result entity.
type KeyResult struct {
	Title    string `json:"title"`
	Progress int    `json:"progress"`
}

// UnmarshalJSON accepts the structured {title, progress} shape as well as
// the legacy bare-string form, which becomes a titled entry at progress 0.
// Non-numeric progress values are normalized to 0 rather than rejected.
func (k *KeyResult) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		k.Title = title
		k.Progress = 0
		return nil
	}

	var raw struct {
		Title    string          `json:"title"`
		Progress json.RawMessage `json:"progress"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	k.Title = raw.Title
	k.Progress = coerceProgress(raw.Progress)
	return nil
}

func coerceProgress(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return int(number + 0.5)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return int(parsed + 0.5)
		}
	}
	return 0
}

// Goal is the objective that owns an ordered key-result sequence and a
// rolled-up progress derived from it.
type Goal struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employeeId"`
	Objective  string      `json:"objective"`
	KeyResults []KeyResult `json:"keyResults"`
	Progress   int         `json:"progress"`
	DueDate    *time.Time  `json:"dueDate,omitempty"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ProgressLogEntry is one immutable observation in the append-only ledger.
type ProgressLogEntry struct {
	ID       string    `json:"id"`
	GoalID   string    `json:"goalId"`
	KeyIndex int       `json:"keyIndex"`
	Progress int       `json:"progress"`
	NotedBy  string    `json:"notedBy"`
	NotedAt  time.Time `json:"notedAt"`
}
