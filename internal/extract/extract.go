package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// Text extracts the plain text of a stored file. The parser is chosen
// by the storage key's extension; anything unrecognized is treated as
// plain text, matching how uploads without an extension behave.
func Text(fileId string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(fileId)) {
	case ".pdf":
		return extractPDF(fileId, data)
	case ".docx", ".odt", ".rtf":
		return extractWithCat(fileId, data)
	default:
		return string(data), nil
	}
}

// The pdf and cat readers want file paths, so blob contents go through
// a temp file.
func withTempFile(fileId string, data []byte, fn func(path string) (string, error)) (string, error) {
	tmp, err := os.CreateTemp("", "bigbrain-*"+filepath.Ext(fileId))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return fn(tmp.Name())
}

func extractPDF(fileId string, data []byte) (string, error) {
	return withTempFile(fileId, data, func(path string) (string, error) {
		reader, err := pdf.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open pdf: %w", err)
		}

		var builder strings.Builder
		numPages := reader.NumPage()
		for i := 1; i <= numPages; i++ {
			page := reader.Page(i)
			if page.V.IsNull() {
				continue
			}
			content, err := page.GetPlainText(nil)
			if err != nil {
				// a single unreadable page should not sink the document
				continue
			}
			builder.WriteString(content)
			builder.WriteString("\n")
		}
		return builder.String(), nil
	})
}

func extractWithCat(fileId string, data []byte) (string, error) {
	return withTempFile(fileId, data, func(path string) (string, error) {
		text, err := cat.File(path)
		if err != nil {
			return "", fmt.Errorf("failed to extract document text: %w", err)
		}
		return text, nil
	})
}
