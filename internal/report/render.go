package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// jsonOutcome is the wire shape of one task in WriteJSON output.
type jsonOutcome struct {
	Name       string      `json:"name"`
	Status     task.Status `json:"status"`
	Error      string      `json:"error,omitempty"`
	BlockedBy  string      `json:"blocked_by,omitempty"`
	DurationMS int64       `json:"duration_ms"`
}

type jsonReport struct {
	Succeeded bool          `json:"succeeded"`
	Started   []string      `json:"started"`
	Tasks     []jsonOutcome `json:"tasks"`
	Counts    Counts        `json:"counts"`
}

// WriteJSON writes the report as an indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	doc := jsonReport{
		Succeeded: r.Succeeded(),
		Started:   r.Started,
		Tasks:     make([]jsonOutcome, 0, len(r.Order)),
		Counts:    r.Counts(),
	}
	if doc.Started == nil {
		doc.Started = []string{}
	}
	for _, o := range r.Outcomes() {
		jo := jsonOutcome{
			Name:       o.Name,
			Status:     o.Status,
			BlockedBy:  o.BlockedBy,
			DurationMS: o.Duration.Milliseconds(),
		}
		if o.Err != nil {
			jo.Error = o.Err.Error()
		}
		doc.Tasks = append(doc.Tasks, jo)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Render writes a human-readable summary. Colours are applied only when w
// is a terminal that supports them.
func (r *Report) Render(w io.Writer) error {
	renderer := lipgloss.NewRenderer(w)
	styles := map[task.Status]lipgloss.Style{
		task.Succeeded: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		task.Failed:    renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		task.Skipped:   renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}
	nameStyle := renderer.NewStyle().Width(r.nameWidth() + 2)
	statusStyle := renderer.NewStyle().Width(len("SUCCEEDED") + 2)

	var sb strings.Builder
	for _, o := range r.Outcomes() {
		sb.WriteString(nameStyle.Render(o.Name))
		sb.WriteString(styles[o.Status].Inherit(statusStyle).Render(strings.ToUpper(o.Status.String())))
		sb.WriteString(detail(o))
		sb.WriteString("\n")
	}

	c := r.Counts()
	headline := "BUILD SUCCESSFUL"
	headStyle := styles[task.Succeeded].Bold(true)
	if !r.Succeeded() {
		headline = "BUILD FAILED"
		headStyle = styles[task.Failed]
	}
	fmt.Fprintf(&sb, "\n%s: %d succeeded, %d failed, %d skipped\n",
		headStyle.Render(headline), c.Succeeded, c.Failed, c.Skipped)

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Report) nameWidth() int {
	width := 0
	for _, name := range r.Order {
		if len(name) > width {
			width = len(name)
		}
	}
	return width
}

func detail(o Outcome) string {
	switch {
	case o.Status == task.Failed && o.Err != nil:
		return o.Err.Error()
	case o.BlockedBy != "":
		return fmt.Sprintf("(blocked by %s)", o.BlockedBy)
	case o.Err != nil:
		return fmt.Sprintf("(%v)", o.Err)
	case o.Status == task.Succeeded:
		return o.Duration.Round(time.Millisecond).String()
	}
	return ""
}
