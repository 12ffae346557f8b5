// SPDX-License-Identifier: MIT

// Package report renders the outcome of a benchmark run as a text summary
// table or as JSON.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvbench/bench"
	"github.com/katalvlaran/lvbench/provider"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Row is one variant line of the summary.
type Row struct {
	Section     string    `json:"section"`
	Backend     string    `json:"backend"`
	Style       string    `json:"style"`
	Calls       int       `json:"calls"`
	Reps        int       `json:"reps"`
	WallSeconds float64   `json:"wall_seconds"`
	Percent     float64   `json:"percent"`
	Status      string    `json:"status"`
	Norm        float64   `json:"norm"`
	Error       string    `json:"error,omitempty"`
	Vector      []float64 `json:"vector,omitempty"`
}

// Report is the full record of one run.
type Report struct {
	RunID        string  `json:"run_id"`
	Case         string  `json:"case"`
	Label        string  `json:"label"`
	Kind         string  `json:"kind"`
	N            int     `json:"n"`
	NNZ          int     `json:"nnz"`
	Refinement   int     `json:"refinement,omitempty"`
	Reps         int     `json:"reps"`
	TotalSeconds float64 `json:"total_seconds"`
	Failures     int     `json:"failures"`
	Rows         []Row   `json:"sections"`
}

// New builds a report from a finished run. Vectors are included only when dump is set.
func New(p *provider.Problem, res *bench.Result, timer *bench.Timer, dump bool) *Report {
	total := timer.Total()
	r := &Report{
		RunID:        uuid.NewString(),
		Case:         res.Case,
		Label:        p.Label,
		Kind:         p.Kind.String(),
		N:            p.N,
		NNZ:          p.NNZ(),
		Refinement:   p.Refinement,
		Reps:         res.Reps,
		TotalSeconds: total.Seconds(),
		Failures:     res.Failures,
	}
	for _, o := range res.Outcomes {
		row := Row{
			Section: o.Variant,
			Backend: o.Backend,
			Style:   string(o.Style),
			Reps:    o.Reps,
			Status:  string(o.Status),
		}
		if s, ok := timer.Section(o.Variant); ok {
			row.Calls = s.Calls
			row.WallSeconds = s.Wall.Seconds()
			row.Percent = percent(s.Wall, total)
		}
		if o.Result != nil {
			row.Norm = floats.Norm(o.Result, 2)
		}
		if o.Err != nil {
			row.Error = o.Err.Error()
		}
		if dump {
			row.Vector = o.Result
		}
		r.Rows = append(r.Rows, row)
	}

	return r
}

func percent(part, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	mismatchStyle = cellStyle.Foreground(lipgloss.Color("196"))
	mutedStyle    = cellStyle.Foreground(lipgloss.Color("241"))
)

// statusCol is the index of the status column in the summary table.
const statusCol = 5

// Table renders the summary table.
func (r *Report) Table() string {
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []string{
			row.Section,
			strconv.Itoa(row.Calls),
			strconv.Itoa(row.Reps),
			fmt.Sprintf("%.6fs", row.WallSeconds),
			fmt.Sprintf("%.1f%%", row.Percent),
			row.Status,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("section", "calls", "reps", "wall time", "% of total", "status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusCol && row >= 0 && row < len(r.Rows) {
				switch bench.Status(r.Rows[row].Status) {
				case bench.StatusMismatch:
					return mismatchStyle
				case bench.StatusSkipped, bench.StatusReduced:
					return mutedStyle
				}
			}
			return cellStyle
		})

	return t.Render()
}

// WriteText writes the header, the summary table and, when vectors were
// kept, one dump line per variant.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Case %s\n", r.Label)
	fmt.Fprintf(&b, "n:    %d\n", r.N)
	fmt.Fprintf(&b, "nnz:  %d\n", r.NNZ)
	fmt.Fprintf(&b, "reps: %d\n", r.Reps)
	fmt.Fprintf(&b, "run:  %s\n", r.RunID)
	b.WriteString(r.Table())
	b.WriteByte('\n')
	fmt.Fprintf(&b, "total: %.6fs, validation failures: %d\n", r.TotalSeconds, r.Failures)
	for _, row := range r.Rows {
		if row.Error != "" {
			fmt.Fprintf(&b, "error: %s\n", row.Error)
		}
	}
	for _, row := range r.Rows {
		if row.Vector == nil {
			continue
		}
		fmt.Fprintf(&b, "%s:", row.Section)
		for _, v := range row.Vector {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(v, 'g', 17, 64))
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("Report.WriteText: %w", err)
	}

	return nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("Report.WriteJSON: %w", err)
	}

	return nil
}
