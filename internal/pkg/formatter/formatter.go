package formatter

import (
	"fmt"

	"github.com/paperdesk/research-backend/internal/entity"
)

const (
	userLabel      = "You"
	assistantLabel = "Assistant"
)

// Transcript is a rendered chat session: the session title plus its turns
// in chronological order.
type Transcript struct {
	Title string
	Turns []*entity.ChatTurn
}

type Formatter interface {
	Format(transcript *Transcript) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func roleLabel(role entity.TurnRole) string {
	if role == entity.RoleAssistant {
		return assistantLabel
	}
	return userLabel
}

func citationLine(c entity.Citation) string {
	return fmt.Sprintf("[Source %d] %s: %s", c.SourceIndex, c.DocumentName, c.Preview)
}
