// Package report renders an end-of-day recap to markdown and PDF.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/studycoach/studycoach/internal/dates"
	"github.com/studycoach/studycoach/internal/recap"
)

// WriteMarkdown renders a recap and its rollover suggestions as a markdown
// document.
func WriteMarkdown(w io.Writer, day dates.Date, r recap.Recap, rollover []recap.RolloverItem) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Study recap for %s\n\n", day)
	fmt.Fprintf(&b, "- Study sessions: %d\n", r.StudySessionsCount)
	fmt.Fprintf(&b, "- Pomodoros: %d\n", r.PomodorosCount)
	fmt.Fprintf(&b, "- Minutes studied: %d\n", r.TotalStudyMinutes)
	fmt.Fprintf(&b, "- Assignments completed: %d\n", r.AssignmentsCompleted)
	fmt.Fprintf(&b, "- Assignments remaining: %d\n\n", r.AssignmentsRemaining)
	fmt.Fprintf(&b, "%s\n", r.MotivationalMessage)

	if len(r.IncompleteByDueDate) > 0 {
		fmt.Fprintf(&b, "\n## Still open\n\n")
		for _, group := range r.IncompleteByDueDate {
			fmt.Fprintf(&b, "### Due %s\n\n", group.DueDate)
			for _, a := range group.Assignments {
				fmt.Fprintf(&b, "- %s (%d min)\n", a.Title, a.EstimatedMinutes)
			}
			fmt.Fprintf(&b, "\n")
		}
	}

	if len(rollover) > 0 {
		fmt.Fprintf(&b, "## Tomorrow's priorities\n\n")
		for _, item := range rollover {
			fmt.Fprintf(&b, "- [%s] %s (due in %d days)\n", item.Priority, item.Title, item.DaysUntilDue)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("io.WriteString() > %w", err)
	}
	return nil
}

// SaveMarkdown writes the recap markdown to a file.
func SaveMarkdown(path string, day dates.Date, r recap.Recap, rollover []recap.RolloverItem) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return WriteMarkdown(file, day, r, rollover)
}

// ConvertMarkdownToPDF converts a markdown recap to PDF. The PDF is created
// next to the markdown file and its absolute path is returned.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}

	return absPath, nil
}
