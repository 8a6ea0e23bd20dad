// Package ingestion reads job postings from files and URLs into clean text.
package ingestion

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Document is the text of one ingested posting and where it came from
type Document struct {
	Text     string
	Metadata *Metadata
}

// SupportedExtensions lists the file extensions ReadDocument accepts
var SupportedExtensions = []string{".txt", ".md", ".docx", ".pdf"}

// IsSupported reports whether path has a readable extension
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ReadDocument reads a .txt, .md, .docx or .pdf file and returns its cleaned text
func ReadDocument(path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		raw string
		err error
	)
	switch ext {
	case ".txt", ".md":
		raw, err = readPlain(path)
	case ".docx":
		raw, err = readDocx(path)
	case ".pdf":
		raw, err = readPDF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	text := CleanText(raw)
	if text == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDocument)
	}

	meta := NewMetadata(text, path)
	meta.Format = strings.TrimPrefix(ext, ".")
	return &Document{Text: text, Metadata: meta}, nil
}

func readPlain(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}

func readDocx(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText keeps character data and turns paragraph and break ends into newlines
func docxXMLToText(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return buf.String()
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String()
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	return buf.String(), nil
}
