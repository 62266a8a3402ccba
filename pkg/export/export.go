package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/planwise/planwise/core/model"
)

// WriteJSON writes the ranked candidates to w in JSON format.
func WriteJSON(w io.Writer, slots []model.CandidateSlot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(slots)
}

// WriteCSV writes the ranked candidates to w in CSV format.
func WriteCSV(w io.Writer, slots []model.CandidateSlot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start", "end", "duration_minutes", "score", "time_of_day", "attendees"}); err != nil {
		return err
	}
	for _, s := range slots {
		rec := []string{
			s.Range.Start.Format(time.RFC3339),
			s.Range.End.Format(time.RFC3339),
			strconv.Itoa(s.DurationMinutes),
			strconv.Itoa(s.Score),
			s.TimeOfDay.String(),
			strings.Join(s.AttendeeIDs, ";"),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
