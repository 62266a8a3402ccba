package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/planwise/planwise/core/model"
)

func sampleSlots() []model.CandidateSlot {
	start := time.Date(2025, 6, 2, 19, 0, 0, 0, time.UTC)
	slot := model.NewCandidateSlot(
		model.TimeRange{Start: start, End: start.Add(time.Hour)},
		[]string{"bob", "alice"})
	slot.Score = 91
	return []model.CandidateSlot{slot}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSlots()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var out []model.CandidateSlot
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Score != 91 {
		t.Fatalf("bad round-trip: %+v", out)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleSlots()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "start,end,duration_minutes,score") {
		t.Fatalf("bad header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "alice;bob") || !strings.Contains(lines[1], ",91,") {
		t.Fatalf("bad row: %s", lines[1])
	}
}
