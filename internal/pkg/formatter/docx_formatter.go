package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(transcript *Transcript) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(transcript.Title)

	for _, turn := range transcript.Turns {
		doc.AddParagraph()

		rolePar := doc.AddParagraph()
		roleRun := rolePar.AddRun()
		roleRun.Properties().SetBold(true)
		roleRun.AddText(roleLabel(turn.Role))

		bodyPar := doc.AddParagraph()
		bodyRun := bodyPar.AddRun()
		bodyRun.AddText(turn.Content)

		for _, citation := range turn.Citations {
			citPar := doc.AddParagraph()
			citRun := citPar.AddRun()
			citRun.Properties().SetItalic(true)
			citRun.AddText(citationLine(citation))
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
