package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	w, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want Format
	}{
		{"pdf magic", "cv.bin", []byte("%PDF-1.4\n"), FormatPDF},
		{"zip magic", "cv", []byte("PK\x03\x04rest"), FormatDOCX},
		{"pdf extension", "cv.PDF", []byte("garbage"), FormatPDF},
		{"docx extension", "cv.docx", []byte("garbage"), FormatDOCX},
		{"magic wins over extension", "cv.txt", []byte("%PDF-1.7"), FormatPDF},
		{"no hints", "notes", []byte("hello"), FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.file, tt.data))
		})
	}
}

func TestParse_PlainText(t *testing.T) {
	text, format, err := NewDocumentParser().Parse("cv.txt", []byte("Experience\r\n\r\nLogistics\rlead\x00"))
	require.NoError(t, err)

	assert.Equal(t, FormatText, format)
	assert.Equal(t, "Experience\n\nLogistics\nlead", text)
}

func TestParse_NormalizesUnicode(t *testing.T) {
	text, _, err := NewDocumentParser().Parse("cv.txt", []byte("Cafe\u0301 \xff"))
	require.NoError(t, err)

	assert.Equal(t, "Caf\u00e9 \ufffd", text)
}

func TestParse_DOCX(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Wanjiku</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Supply </w:t></w:r><w:r><w:t>Chain</w:t></w:r><w:r><w:tab/><w:t>2021</w:t></w:r></w:p>
    <w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, format, err := NewDocumentParser().Parse("cv.docx", buildDOCX(t, doc))
	require.NoError(t, err)

	assert.Equal(t, FormatDOCX, format)
	assert.Equal(t, "Jane Wanjiku\nSupply Chain\t2021\nLine one\nLine two\n", text)
}

func TestParse_UnreadableDocuments(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"corrupt pdf", "cv.pdf", []byte("%PDF-1.7 truncated")},
		{"corrupt docx", "cv.docx", []byte("PK\x03\x04 truncated")},
		{"docx without body", "cv.docx", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				var buf bytes.Buffer
				zw := zip.NewWriter(&buf)
				_, err := zw.Create("word/styles.xml")
				require.NoError(t, err)
				require.NoError(t, zw.Close())
				data = buf.Bytes()
			}

			_, _, err := NewDocumentParser().Parse(tt.file, data)
			assert.ErrorIs(t, err, ErrUnreadableDocument)
		})
	}
}
