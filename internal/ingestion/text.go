// Package ingestion reads résumé documents from disk and normalizes their text
// before it is sent to the generator.
package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file extensions ReadResume cannot read
	ErrUnsupportedFormat = errors.New("unsupported résumé format")
	// ErrEmptyDocument is returned when a document yields no text
	ErrEmptyDocument = errors.New("résumé contains no text")
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	blankLines = regexp.MustCompile(`\n\n\n+`)
)

// bulletPrefixes are kept verbatim at the start of a line
var bulletPrefixes = []string{"- ", "* ", "• ", "· "}

// ReadResume reads the résumé at path, extracts its text according to the
// file extension (.txt, .md, .pdf, .docx) and cleans it. Files without an
// extension are read as plain text.
func ReadResume(path string) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("résumé file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read résumé file: %w", err)
	}

	format := formatOf(path)
	var raw string
	switch format {
	case FormatText:
		raw = string(data)
	case FormatPDF:
		raw, err = extractPDFText(data)
	case FormatDOCX:
		raw, err = extractDocxText(data)
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}

	return cleaned, NewMetadata(cleaned, path, format), nil
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	// PDF extraction emits form feeds between pages
	content = strings.ReplaceAll(content, "\f", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	// Markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}

	return strings.Repeat(" ", indent) + spaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
