// Package export writes the current goal snapshot as a delimited
// tabular artifact for use outside the client.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/achievify/goaltrack/internal/model"
)

// header is the fixed column order of the export.
var header = []string{
	"id",
	"text",
	"category",
	"priority",
	"due_date",
	"completed",
	"measurable",
	"current_value",
	"target_value",
}

// WriteCSV writes the goals to w in the fixed column order. Fields
// containing the delimiter or quote character are quoted with embedded
// quotes doubled, per RFC 4180.
func WriteCSV(w io.Writer, goals []model.Goal) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, g := range goals {
		due := ""
		if g.DueDate != nil {
			due = g.DueDate.Format("2006-01-02")
		}

		record := []string{
			g.ID,
			g.Text,
			string(g.Category),
			string(g.Priority),
			due,
			strconv.FormatBool(g.Completed),
			strconv.FormatBool(g.IsMeasurable),
			formatValue(g.IsMeasurable, g.CurrentValue),
			formatValue(g.IsMeasurable, g.TargetValue),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatValue renders a measurable value, or blank for goals that have
// none.
func formatValue(measurable bool, v float64) string {
	if !measurable {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToFile writes the goals to a timestamped CSV file in the user's home
// directory and returns its path.
func ToFile(goals []model.Goal) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	name := fmt.Sprintf("goals-%s.csv", time.Now().Format("2006-01-02"))
	path := filepath.Join(home, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, goals); err != nil {
		return "", err
	}
	return path, nil
}
