package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chatterbot/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export writes the transcript as a readable Markdown document
func (e *MarkdownExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Chat Transcript\n\n")

	if transcript.Server != "" {
		_, _ = fmt.Fprintf(w, "**Server:** %s  \n", transcript.Server)
	}
	if transcript.SavedAt != "" {
		_, _ = fmt.Fprintf(w, "**Saved:** %s  \n", transcript.SavedAt)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(transcript.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range transcript.Messages {
		label := speakerLabel(msg)

		timestamp := ""
		if msg.Timestamp != "" {
			timestamp = fmt.Sprintf(" (%s)", msg.Timestamp)
		}

		content := escapeMarkdown(msg.Content)

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", label, timestamp, content)

		if i < len(transcript.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// speakerLabel names the message author, including model attribution for
// assistant replies when the service reported one.
func speakerLabel(msg internal.Message) string {
	switch msg.Role {
	case internal.RoleUser:
		return "You"
	case internal.RoleAssistant:
		if msg.Model != "" {
			return fmt.Sprintf("Assistant [%s]", msg.Model)
		}
		return "Assistant"
	default:
		return string(msg.Role)
	}
}

// escapeMarkdown escapes markdown emphasis outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
