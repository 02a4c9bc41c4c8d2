// Package extract turns uploaded documents and web pages into plain text.
// Extraction is best-effort: callers treat an error the same as an empty
// result and reject the request upstream.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var allowedExtensions = map[string]bool{
	"txt":  true,
	"pdf":  true,
	"docx": true,
	"pptx": true,
}

// Allowed reports whether the file name carries a supported extension.
func Allowed(name string) bool {
	return allowedExtensions[ext(name)]
}

func ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// FromFile extracts plain text from a supported document.
func FromFile(path string) (string, error) {
	switch ext(path) {
	case "txt":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case "pdf":
		return fromPDF(path)
	case "docx":
		return fromDocx(path)
	case "pptx":
		return fromPptx(path)
	}
	return "", fmt.Errorf("unsupported file type: %q", ext(path))
}

func fromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	rd, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, rd); err != nil {
		return "", err
	}
	return sb.String(), nil
}
