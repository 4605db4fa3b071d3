// Package resume extracts plain text from uploaded résumé files.
package resume

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// errTextPrefix marks an extraction failure reported inside the returned
// text. ExtractText never returns a Go error: by long-standing convention the
// caller receives a non-empty string either way and treats it as input. Use
// IsErrorText to detect the marker before trusting the content.
const errTextPrefix = "Could not read resume file: "

// Extractor adapts ExtractText to the pipeline's collaborator interface.
type Extractor struct{}

func (Extractor) ExtractText(filename string, r io.Reader) string {
	return ExtractText(filename, r)
}

// ExtractText reads the text content of an uploaded résumé. Supported
// formats: .docx (paragraph text from the document body), .pdf (plain text
// across all pages) and plain text (anything else, with invalid UTF-8
// dropped).
func ExtractText(filename string, r io.Reader) string {
	ext := strings.ToLower(filepath.Ext(filename))

	data, err := io.ReadAll(r)
	if err != nil {
		return errTextPrefix + err.Error()
	}

	switch ext {
	case ".docx":
		text, err := docxText(data)
		if err != nil {
			return errTextPrefix + err.Error()
		}
		return text
	case ".pdf":
		text, err := pdfText(data)
		if err != nil {
			return errTextPrefix + err.Error()
		}
		return text
	default:
		return strings.ToValidUTF8(string(data), "")
	}
}

// IsErrorText reports whether an ExtractText result is an embedded error
// message rather than résumé content. Downstream scoring cannot distinguish
// the two on its own; callers should check this before scoring.
func IsErrorText(text string) bool {
	return strings.HasPrefix(text, errTextPrefix)
}

// pdfText extracts the plain text of every page of a PDF document.
func pdfText(data []byte) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}

// docxText pulls paragraph text out of the main document part of a .docx
// archive. Runs are concatenated per paragraph, paragraphs join with
// newlines.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", errMissingDocumentPart
	}

	rc, err := doc.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText && utf8.Valid(t) {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

type docxError string

func (e docxError) Error() string { return string(e) }

const errMissingDocumentPart = docxError("docx archive has no word/document.xml")
