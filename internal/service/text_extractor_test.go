package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePagePDF builds a minimal valid PDF whose single page shows text in Helvetica.
func onePagePDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func docxWith(paragraphs ...string) []byte {
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/document.xml")
	_, _ = w.Write(body.Bytes())
	_ = zw.Close()
	return buf.Bytes()
}

func TestTextExtractor(t *testing.T) {
	te := NewTextExtractor()

	tests := []struct {
		name     string
		file     string
		data     []byte
		contains string
		empty    bool
	}{
		{name: "plain text", file: "notes.txt", data: []byte("Ferritin was ordered."), contains: "Ferritin"},
		{name: "pdf", file: "labs.PDF", data: onePagePDF("Hemoglobin is low"), contains: "Hemoglobin is low"},
		{name: "docx", file: "letter.docx", data: docxWith("Dear colleague,", "Potassium is normal."), contains: "Potassium is normal."},
		{name: "binary without parser", file: "scan.png", data: []byte{0x89, 'P', 'N', 'G', 0xff, 0xfe}, empty: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := te.Extract(tt.file, tt.data)
			require.NoError(t, err)
			if tt.empty {
				assert.Empty(t, text)
				return
			}
			assert.Contains(t, text, tt.contains)
		})
	}
}

func TestTextExtractorRejectsCorruptFiles(t *testing.T) {
	te := NewTextExtractor()
	_, err := te.Extract("broken.pdf", []byte("not a pdf"))
	assert.Error(t, err)
	_, err = te.Extract("broken.docx", []byte("not a zip"))
	assert.Error(t, err)
}

func TestIngestPDFIsSearchable(t *testing.T) {
	ctx := context.Background()
	docs, _, _ := newTestServices(t, t.TempDir())

	meta, err := docs.Ingest(ctx, "labs.pdf", onePagePDF("Hemoglobin is low"), "upload", "")
	require.NoError(t, err)
	assert.Greater(t, meta.Chunks, 0)

	hits, err := docs.Search(ctx, "hemoglobin", 4, "")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "labs.pdf", hits[0].Doc.Name)

	_, err = docs.Ingest(ctx, "broken.pdf", []byte("garbage"), "upload", "")
	assert.Error(t, err)
}
