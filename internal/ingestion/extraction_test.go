package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     Format
	}{
		{"pdf extension", "cv.PDF", nil, FormatPDF},
		{"docx extension", "cv.docx", nil, FormatDOCX},
		{"txt extension", "cv.txt", nil, FormatText},
		{"markdown extension", "cv.md", nil, FormatMarkdown},
		{"pdf magic", "upload", []byte("%PDF-1.7\n..."), FormatPDF},
		{"zip magic", "upload", []byte("PK\x03\x04rest"), FormatDOCX},
		{"plain text sniff", "", []byte("Jane Doe\nEngineer"), FormatText},
		{"legacy doc", "cv.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.filename, tt.data))
		})
	}
}

func TestExtractText_PlainText(t *testing.T) {
	text, metadata, err := ExtractText("resume.md", []byte("# Jane Doe\n\n\n\n- Go developer\n"))
	require.NoError(t, err)

	assert.Equal(t, "# Jane Doe\n\n- Go developer", text)
	assert.Equal(t, FormatMarkdown, metadata.Format)
}

func TestExtractText_Docx(t *testing.T) {
	body := `<w:p><w:r><w:t>Jane </w:t></w:r><w:r><w:t>Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>R&amp;D Engineer</w:t><w:tab/><w:t>2019</w:t></w:r></w:p>`
	data := buildDocx(t, body)

	text, metadata, err := ExtractText("resume.docx", data)
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "R&D Engineer")
	assert.Contains(t, text, "2019")
	assert.Equal(t, FormatDOCX, metadata.Format)
}

func TestExtractText_InputErrors(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		data      []byte
		wantEmpty bool
	}{
		{"unsupported type", "resume.doc", []byte{0xD0, 0xCF, 0x11, 0xE0}, false},
		{"blank text file", "resume.txt", []byte("  \n\t\n "), true},
		{"docx without text", "resume.docx", nil, true},
		{"corrupt pdf", "resume.pdf", []byte("%PDF-1.4 not really a pdf"), false},
		{"corrupt docx", "resume.docx", []byte("PK\x03\x04garbage"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				data = buildDocx(t, `<w:p><w:r><w:t>   </w:t></w:r></w:p>`)
			}

			text, metadata, err := ExtractText(tt.filename, data)
			require.Error(t, err)
			assert.Empty(t, text)
			assert.Nil(t, metadata)
			assert.True(t, parsing.IsInputError(err))
			assert.Equal(t, tt.wantEmpty, errors.Is(err, parsing.ErrEmptyDocument))
		})
	}
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:p><w:r><w:t>A</w:t><w:br/><w:t>B &lt;C&gt;</w:t></w:r></w:p><w:p><w:r><w:t>D</w:t></w:r></w:p>`
	assert.Equal(t, "A\nB <C>\nD\n", docxXMLToText(xml))
}
