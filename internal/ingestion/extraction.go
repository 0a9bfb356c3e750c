// Package ingestion turns uploaded resume documents into clean plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a supported document type
type Format string

// Supported document formats
const (
	FormatUnknown  Format = ""
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")

	docxTagPattern = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat picks a format from the file extension, falling back to
// content sniffing when the extension is missing or unknown.
func DetectFormat(filename string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt", ".text":
		return FormatText
	case ".md", ".markdown":
		return FormatMarkdown
	}

	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(data, zipMagic):
		return FormatDOCX
	case strings.HasPrefix(http.DetectContentType(data), "text/plain"):
		return FormatText
	}
	return FormatUnknown
}

// ExtractText extracts and cleans the text of a document. Unsupported types,
// unreadable documents and documents without a text layer are reported as
// *parsing.InputError.
func ExtractText(filename string, data []byte) (string, *Metadata, error) {
	format := DetectFormat(filename, data)

	var (
		raw string
		err error
	)
	switch format {
	case FormatPDF:
		raw, err = extractPDFText(data)
	case FormatDOCX:
		raw, err = extractDocxText(data)
	case FormatText, FormatMarkdown:
		raw = string(data)
	default:
		return "", nil, &parsing.InputError{
			Message: fmt.Sprintf("unsupported document type %q: expected pdf, docx, txt or md", filepath.Ext(filename)),
		}
	}
	if err != nil {
		return "", nil, &parsing.InputError{Message: fmt.Sprintf("failed to read %s document", format), Cause: err}
	}

	text := CleanText(raw)
	if strings.TrimSpace(text) == "" {
		return "", nil, &parsing.InputError{Message: filenameOr(filename, string(format)), Cause: parsing.ErrEmptyDocument}
	}

	return text, NewMetadata(filename, format, data), nil
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML into plain text, one paragraph per line.
func docxXMLToText(xml string) string {
	replacer := strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:tab/>", "\t",
	)
	xml = replacer.Replace(xml)
	xml = docxTagPattern.ReplaceAllString(xml, "")
	return html.UnescapeString(xml)
}

func filenameOr(filename, fallback string) string {
	if filename != "" {
		return filename
	}
	return fallback
}
