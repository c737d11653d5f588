package bank

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Format selects a report rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts markdown, md and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Bank     string        `json:"bank,omitempty"`
	Unit     string        `json:"unit"`
	Case     string        `json:"case"`
	Passed   bool          `json:"passed"`
	Want     string        `json:"want"`
	Got      string        `json:"got"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Report aggregates case results.
type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Cases       []CaseResult  `json:"cases"`
	Total       int           `json:"total"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	Duration    time.Duration `json:"duration"`
}

func (r *Report) add(cr CaseResult) {
	r.Cases = append(r.Cases, cr)
	r.Total++
	if cr.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
}

// OK reports whether every case passed.
func (r *Report) OK() bool { return r.Failed == 0 }

// Failures returns the failed cases in run order.
func (r *Report) Failures() []CaseResult {
	var out []CaseResult
	for _, c := range r.Cases {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// Render writes the report in format f.
func (r *Report) Render(w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatMarkdown, "":
		_, err := io.WriteString(w, r.Markdown())
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Markdown renders a summary table followed by the failures.
func (r *Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Unit Bank Report\n\n")
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", r.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Cases\n\n")
	sb.WriteString("| Unit | Case | Status | Duration |\n")
	sb.WriteString("|------|------|--------|----------|\n")
	for _, c := range r.Cases {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %v |\n", c.Unit, c.Case, status, c.Duration.Round(time.Microsecond))
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total | %d |\n", r.Total)
	fmt.Fprintf(&sb, "| Passed | %d |\n", r.Passed)
	fmt.Fprintf(&sb, "| Failed | %d |\n", r.Failed)
	fmt.Fprintf(&sb, "| Duration | %v |\n", r.Duration.Round(time.Millisecond))

	if failures := r.Failures(); len(failures) > 0 {
		sb.WriteString("\n## Failures\n\n")
		for _, c := range failures {
			fmt.Fprintf(&sb, "### %s / %s\n\n", c.Unit, c.Case)
			fmt.Fprintf(&sb, "- want: `%s`\n", c.Want)
			fmt.Fprintf(&sb, "- got: `%s`\n", c.Got)
			if c.Error != "" && !strings.HasPrefix(c.Got, "error: ") {
				fmt.Fprintf(&sb, "- detail: %s\n", c.Error)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
