package goals

import (
	"bytes"
	"encoding/json"
	"math"
)

// NormalizeKeyResults decodes a stored key-result blob into the structured
// sequence. NULL and empty blobs become an empty sequence; a bare scalar or
// single object becomes a one-element sequence. The ambiguity of the legacy
// shapes never leaves this boundary.
func NormalizeKeyResults(raw []byte) []KeyResult {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var sequence []KeyResult
	if err := json.Unmarshal(trimmed, &sequence); err == nil {
		return sequence
	}

	var single KeyResult
	if err := json.Unmarshal(trimmed, &single); err == nil {
		return []KeyResult{single}
	}
	return nil
}

// ClampProgress bounds a progress value to [0,100].
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// ExtendKeyResults returns a copy of the sequence grown with empty
// placeholder entries up to and including keyIndex. The sequence only ever
// grows; it never shrinks.
func ExtendKeyResults(sequence []KeyResult, keyIndex int) []KeyResult {
	length := len(sequence)
	if keyIndex+1 > length {
		length = keyIndex + 1
	}
	extended := make([]KeyResult, length)
	copy(extended, sequence)
	return extended
}

// ApplyProgress records a clamped progress value at keyIndex, preserving the
// existing title and lazily extending the sequence when keyIndex is beyond
// its current length.
func ApplyProgress(sequence []KeyResult, keyIndex, progress int) []KeyResult {
	updated := ExtendKeyResults(sequence, keyIndex)
	updated[keyIndex].Progress = ClampProgress(progress)
	return updated
}

// RollupProgress is the rounded mean of entry progress across the whole
// sequence, clamped to [0,100]. An empty sequence rolls up to 0.
func RollupProgress(sequence []KeyResult) int {
	if len(sequence) == 0 {
		return 0
	}
	total := 0
	for _, entry := range sequence {
		total += entry.Progress
	}
	mean := math.Round(float64(total) / float64(len(sequence)))
	return ClampProgress(int(mean))
}

// RollupLatest recomputes the goal progress from the latest observation per
// key index, the alternate basis for the rollup. Indices never observed
// contribute 0; keyCount widens the denominator to the goal's sequence
// length when it exceeds the highest observed index.
func RollupLatest(latest map[int]ProgressLogEntry, keyCount int) int {
	count := keyCount
	total := 0
	for keyIndex, entry := range latest {
		if keyIndex+1 > count {
			count = keyIndex + 1
		}
		total += ClampProgress(entry.Progress)
	}
	if count == 0 {
		return 0
	}
	mean := math.Round(float64(total) / float64(count))
	return ClampProgress(int(mean))
}
