// Package export renders ranked frame results as CSV reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/ranking"
)

// scorePrecision is the number of decimal places scores keep in the report.
const scorePrecision = 4

// Header returns the CSV column names in report order: identity and rank
// first, then every sub-score in the fixed metric order.
func Header() []string {
	cols := []string{"frame_id", "group_id", "rank", "final_score", "action", "confidence"}
	for _, m := range model.Metrics {
		cols = append(cols, string(m))
	}
	return cols
}

// WriteCSV writes the ranked entries as a CSV report. Rows follow the given
// entry order, so passing a combined ranking yields a best-first report.
func WriteCSV(w io.Writer, entries []ranking.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, 0, 6+len(model.Metrics))
	for _, e := range entries {
		r := e.Result
		row = row[:0]
		row = append(row,
			r.FrameID,
			r.GroupID,
			strconv.Itoa(e.Rank),
			formatScore(r.FinalScore),
			string(r.Action.Action),
			formatScore(r.Action.Confidence),
		)
		for _, m := range model.Metrics {
			row = append(row, formatScore(r.Scores.Get(m)))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for frame %s: %w", r.FrameID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', scorePrecision, 64)
}
