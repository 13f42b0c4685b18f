package services

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"time"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("Failed to create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("Failed to write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	doc := buildDOCX(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Hello &amp; welcome</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Second</w:t><w:tab/><w:t>line</w:t><w:br/><w:t>third</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	svc := NewFileExtractService(time.Second)
	text, err := svc.ExtractDOCX(context.Background(), doc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "Hello & welcome\nSecond\tline\nthird"
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestExtractDOCX_Failures(t *testing.T) {
	var empty bytes.Buffer
	zw := zip.NewWriter(&empty)
	zw.Create("word/styles.xml")
	zw.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"not a zip", []byte("plain old bytes")},
		{"missing document.xml", empty.Bytes()},
	}

	svc := NewFileExtractService(time.Second)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ExtractDOCX(context.Background(), tc.data); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestExtractPDF_RejectsNonPDF(t *testing.T) {
	svc := NewFileExtractService(time.Second)
	if _, err := svc.ExtractPDF(context.Background(), []byte("definitely not a pdf")); err == nil {
		t.Error("Expected error for non-PDF input")
	}
}

func TestNormalizeExtractedText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims lines", "  a  \n  b  ", "a\nb"},
		{"collapses blank runs", "a\n\n\n\nb", "a\n\nb"},
		{"converts CR and CRLF", "a\r\nb\rc", "a\nb\nc"},
		{"blank input", " \n\t\n ", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := normalizeExtractedText(tc.input)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}
