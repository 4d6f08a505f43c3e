package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live.
	// In Docker runtime we copy fonts to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

func (pf *PDFFormatter) Format(transcript *Transcript) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Use the bundled UTF-8 capable DejaVuSans font when available.
	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		pdf.AddUTF8Font(pdfFontName, "I", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.MultiCell(0, 9, transcript.Title, "", "", false)
	pdf.Ln(4)

	_, lineHeight := pdf.GetFontSize()

	for _, turn := range transcript.Turns {
		pdf.SetFont(fontName, "B", 12)
		pdf.Cell(0, 8, roleLabel(turn.Role))
		pdf.Ln(8)

		pdf.SetFont(fontName, "", 11)
		pdf.MultiCell(0, lineHeight*1.5, turn.Content, "", "", false)

		if len(turn.Citations) > 0 {
			pdf.SetFont(fontName, "I", 9)
			for _, citation := range turn.Citations {
				pdf.MultiCell(0, lineHeight*1.3, citationLine(citation), "", "", false)
			}
		}

		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
