package study

import (
	"fmt"
	"strings"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// Export formats for study notes.
const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// NotesFileName returns the download name for an export.
func NotesFileName(videoID, format string) string {
	if format == FormatMarkdown {
		return fmt.Sprintf("study-notes-%s.md", videoID)
	}
	return "video-notes.txt"
}

// RenderNotes produces the downloadable study notes for an analysis. Pure
// string formatting; no I/O.
func RenderNotes(a *entities.VideoAnalysis, format string) string {
	if format == FormatMarkdown {
		return renderMarkdown(a)
	}
	return renderText(a)
}

func renderMarkdown(a *entities.VideoAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Study Notes: %s\n\n", a.Title)
	fmt.Fprintf(&b, "Video: %s\n\n", a.WatchURL())

	b.WriteString("## Summary\n\n")
	if text := a.Summary.Text(); text != "" {
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	if len(a.Summary.KeyPoints) > 0 {
		b.WriteString("### Key Points\n\n")
		for _, p := range a.Summary.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteByte('\n')
	}
	if len(a.Summary.MainTopics) > 0 {
		b.WriteString("### Main Topics\n\n")
		for _, t := range a.Summary.MainTopics {
			fmt.Fprintf(&b, "- %s\n", t)
		}
		b.WriteByte('\n')
	}
	if a.Summary.DifficultyLevel != "" {
		fmt.Fprintf(&b, "**Difficulty:** %s  \n", a.Summary.DifficultyLevel)
	}
	if a.Summary.EstimatedReadingTime > 0 {
		fmt.Fprintf(&b, "**Estimated reading time:** %d min\n", a.Summary.EstimatedReadingTime)
	}
	b.WriteByte('\n')

	if len(a.Timestamps) > 0 {
		b.WriteString("## Timestamps\n\n")
		for _, ts := range a.Timestamps {
			fmt.Fprintf(&b, "- **%s** %s - %s\n", ts.Time, ts.Topic, ts.Description)
		}
		b.WriteByte('\n')
	}

	if a.Degraded {
		fmt.Fprintf(&b, "> Note: generated in degraded mode (%s).\n", a.DegradedReason)
	}

	return b.String()
}

func renderText(a *entities.VideoAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Study Notes: %s\n", a.Title)
	fmt.Fprintf(&b, "Video: %s\n\n", a.WatchURL())

	b.WriteString("SUMMARY\n")
	if text := a.Summary.Text(); text != "" {
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	if len(a.Summary.KeyPoints) > 0 {
		b.WriteString("KEY POINTS\n")
		for _, p := range a.Summary.KeyPoints {
			fmt.Fprintf(&b, "  * %s\n", p)
		}
		b.WriteByte('\n')
	}
	if len(a.Summary.MainTopics) > 0 {
		b.WriteString("MAIN TOPICS\n")
		for _, t := range a.Summary.MainTopics {
			fmt.Fprintf(&b, "  * %s\n", t)
		}
		b.WriteByte('\n')
	}

	if len(a.Timestamps) > 0 {
		b.WriteString("TIMESTAMPS\n")
		for _, ts := range a.Timestamps {
			fmt.Fprintf(&b, "  [%s] %s - %s\n", ts.Time, ts.Topic, ts.Description)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
