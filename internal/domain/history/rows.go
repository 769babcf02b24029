package history

import (
	"fmt"
	"strconv"
	"time"

	"github.com/okian/fitcheck/internal/domain/model"
)

// Display constants.
const (
	EmptyPlaceholder = "No history yet"
	TimeLayout       = "2006-01-02 15:04:05"
)

// Row is one rendered history line.
type Row struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary,omitempty"`
	Time     string `json:"time,omitempty"`
	// Empty marks the single placeholder row shown for an empty history.
	Empty bool `json:"empty,omitempty"`
}

// Rows formats entries for display, newest first, with timestamps in loc.
// An empty history yields exactly one placeholder row.
func Rows(entries []model.HistoryEntry, loc *time.Location) []Row {
	if len(entries) == 0 {
		return []Row{{Headline: EmptyPlaceholder, Empty: true}}
	}
	if loc == nil {
		loc = time.Local
	}
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			Headline: fmt.Sprintf("%s — %s", FormatNumber(e.BMI), e.Category),
			Summary: fmt.Sprintf("%s · %s%s · %s%s",
				e.UnitLabel, FormatNumber(e.Weight), e.WeightUnit, FormatNumber(e.Height), e.HeightUnit),
			Time: e.Time().In(loc).Format(TimeLayout),
		}
	}
	return rows
}

// FormatNumber prints v in its shortest form: 70 -> "70", 70.5 -> "70.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
