// Package extract pulls plain text out of uploaded files for indexing.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extracts the text content of the file at path based on its MIME type.
// PDF and text/* files are supported; anything else yields an empty string
// without error.
func Text(path, mimeType string) (string, error) {
	switch {
	case strings.Contains(mimeType, "pdf"):
		return pdfText(path)
	case strings.HasPrefix(mimeType, "text/"):
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(data), nil
	default:
		return "", nil
	}
}

func pdfText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	data, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(data), nil
}
