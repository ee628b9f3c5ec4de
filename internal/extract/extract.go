package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"baliance.com/gooxml/document"
	"github.com/ledongthuc/pdf"
)

// Typed extraction failures. Handlers map these to client-facing statuses.
var (
	// ErrUnsupportedFormat means the file extension is not in the whitelist.
	// It is returned before any parsing is attempted.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrCorruptFile means a recognized format failed to parse.
	ErrCorruptFile = errors.New("file could not be parsed")
)

// supported is the extension whitelist, lower-cased with leading dot.
var supported = []string{".pdf", ".docx", ".txt"}

// Supported returns the accepted file extensions.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// Extract produces the UTF-8 plain text of an uploaded file, dispatching on
// the lower-cased extension of filename. An empty result is valid: a
// password-protected or image-only PDF extracts to nothing without being an
// error. Extraction is synchronous and single-shot; there are no retries.
func Extract(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".txt":
		return extractTXT(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// extractTXT decodes the bytes as strict UTF-8. Invalid sequences are
// treated as corruption rather than lossily replaced.
func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: invalid UTF-8 in text file", ErrCorruptFile)
	}
	return strings.TrimSpace(string(data)), nil
}

// extractPDF walks the document page by page and concatenates the plain
// text. Pages that cannot be decoded are skipped so a partially extractable
// file still yields its readable portion.
func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// extractDOCX concatenates paragraph text in document order, one paragraph
// per line. Runs within a paragraph are joined without separators.
func extractDOCX(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	var sb strings.Builder
	for _, p := range doc.Paragraphs() {
		for _, run := range p.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}
