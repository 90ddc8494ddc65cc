// Package extract pulls plain text out of uploaded grounding documents.
package extract

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gen2brain/go-fitz"
)

// ErrUnsupportedType is returned for uploads that are neither PDF nor plain
// text.
var ErrUnsupportedType = errors.New("unsupported file type: only PDF and plain text files are accepted")

// Text extracts the textual content of an uploaded file based on its
// extension. PDFs are rendered page by page to markdown; .txt files are
// passed through as-is.
func Text(filename string, contents []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDFText(contents)
	case ".txt":
		return string(contents), nil
	default:
		return "", ErrUnsupportedType
	}
}

// PDFText converts a PDF to markdown text, one page at a time.
func PDFText(contents []byte) (string, error) {
	doc, err := fitz.NewFromMemory(contents)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		html, err := doc.HTML(i, true)
		if err != nil {
			return "", err
		}

		converter := md.NewConverter("", true, nil)
		text, err := converter.ConvertString(html)
		if err != nil {
			return "", err
		}

		// Strip inlined base64 images so they don't blow up the prompt.
		b.WriteString(removeHardcodedImages(text))
		b.WriteString("\n\n")
	}

	return b.String(), nil
}

var hardcodedImageRe = regexp.MustCompile(`!\[\]\(data:image/[^)]+\)`)

func removeHardcodedImages(content string) string {
	return hardcodedImageRe.ReplaceAllString(content, "")
}

// Truncate caps s at limit runes. Extracted context is capped before being
// injected into prompts so a large upload cannot exceed the model's input
// window.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
