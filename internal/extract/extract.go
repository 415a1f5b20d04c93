package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/minutia-ai/minutia/internal/vtt"
)

// Result is the flattened text pulled out of an uploaded document.
type Result struct {
	Content      string
	Kind         string // docx, pdf, txt, vtt
	UsedFallback bool   // vtt only: structured parse failed, classifier ran
}

// FromFile extracts text from data based on the file extension.
func FromFile(data io.ReaderAt, size int64, filename string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".doc":
		return extractDOCX(data, size)
	case ".pdf":
		return extractPDF(data, size)
	case ".txt", ".md", ".text":
		return extractTXT(data, size)
	case ".vtt":
		return extractVTT(data, size)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

// SupportedTypes lists the extensions FromFile accepts.
func SupportedTypes() []string {
	return []string{".docx", ".doc", ".pdf", ".txt", ".md", ".text", ".vtt"}
}

// extractDOCX walks word/document.xml and collects the text of every
// paragraph in document order. Table cell contents are paragraphs too, so
// they come out with the rest, one line per paragraph.
func extractDOCX(data io.ReaderAt, size int64) (*Result, error) {
	zr, err := zip.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("open DOCX: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("open DOCX: no word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return nil, fmt.Errorf("parse document.xml: %w", err)
	}

	return &Result{Content: strings.Join(paragraphs, "\n"), Kind: "docx"}, nil
}

func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br":
				current.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

func extractPDF(data io.ReaderAt, size int64) (*Result, error) {
	reader, err := pdf.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return &Result{Content: strings.TrimSpace(buf.String()), Kind: "pdf"}, nil
}

func extractTXT(data io.ReaderAt, size int64) (*Result, error) {
	buf := make([]byte, size)
	if _, err := data.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	return &Result{Content: string(bytes.TrimSpace(buf)), Kind: "txt"}, nil
}

func extractVTT(data io.ReaderAt, size int64) (*Result, error) {
	buf := make([]byte, size)
	if _, err := data.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read VTT file: %w", err)
	}

	res, err := vtt.ExtractText(string(buf))
	if err != nil {
		return nil, err
	}
	return &Result{Content: res.Text, Kind: "vtt", UsedFallback: res.UsedFallback}, nil
}
