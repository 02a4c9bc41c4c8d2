package extract_test

import (
	"archive/zip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/extract"
)

func TestAllowed(t *testing.T) {
	for _, name := range []string{"a.txt", "b.PDF", "slides.pptx", "doc.docx"} {
		if !extract.Allowed(name) {
			t.Errorf("%s should be allowed", name)
		}
	}
	for _, name := range []string{"a.exe", "b", "c.md", "d.txt.zip"} {
		if extract.Allowed(name) {
			t.Errorf("%s should not be allowed", name)
		}
	}
}

func TestFromFileTxt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text content"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := extract.FromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "plain text content" {
		t.Errorf("got %q", got)
	}
}

func TestFromFileUnsupported(t *testing.T) {
	if _, err := extract.FromFile("whatever.exe"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFromFileDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	writeDocx(t, path, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	got, err := extract.FromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "First paragraph.") || !strings.Contains(got, "Second paragraph.") {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Error("paragraphs should be newline-separated")
	}
}

func TestFromFileDocxCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := extract.FromFile(path); err == nil {
		t.Fatal("expected error for corrupt docx")
	}
}

func TestFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
<script>var hidden = "secret";</script>
<style>.x { color: red; }</style>
</head><body>
<h1>Visible   Title</h1>
<p>Body text here.</p>
<noscript>fallback</noscript>
</body></html>`))
	}))
	defer srv.Close()

	got, err := extract.FromURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Visible Title") || !strings.Contains(got, "Body text here.") {
		t.Errorf("got %q", got)
	}
	for _, hidden := range []string{"secret", "color", "fallback"} {
		if strings.Contains(got, hidden) {
			t.Errorf("non-visible content %q leaked into %q", hidden, got)
		}
	}
}

func TestFromURLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := extract.FromURL(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
