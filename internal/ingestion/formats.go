package ingestion

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies how a résumé file is decoded
type Format string

// Supported formats
const (
	FormatText    Format = "text"
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatUnknown Format = "unknown"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".md", ".text":
		return FormatText
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return FormatUnknown
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return documentText(doc.Editable().GetContent())
}

// documentText flattens WordprocessingML to plain text: one line per
// paragraph, tabs and breaks kept.
func documentText(content string) (string, error) {
	xmlDoc := etree.NewDocument()
	if err := xmlDoc.ReadFromString(content); err != nil {
		return "", fmt.Errorf("failed to parse docx document: %w", err)
	}
	if xmlDoc.Root() == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range xmlDoc.Root().FindElements("//w:p") {
		writeRuns(&sb, p)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func writeRuns(sb *strings.Builder, el *etree.Element) {
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "tab":
			sb.WriteString("\t")
		case "br", "cr":
			sb.WriteString("\n")
		case "p":
			// nested paragraphs (text boxes) are visited by the caller
		default:
			writeRuns(sb, c)
		}
	}
}
