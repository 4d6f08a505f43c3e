package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(transcript *Transcript) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", transcript.Title)

	for _, turn := range transcript.Turns {
		fmt.Fprintf(&buf, "**%s**\n\n%s\n\n", roleLabel(turn.Role), turn.Content)

		for _, citation := range turn.Citations {
			fmt.Fprintf(&buf, "> %s\n", citationLine(citation))
		}
		if len(turn.Citations) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
