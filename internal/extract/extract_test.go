package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/minutia-ai/minutia/internal/vtt"
)

func TestFromFile_TXT(t *testing.T) {
	data := []byte("  meeting notes\nsecond line  \n")
	res, err := FromFile(bytes.NewReader(data), int64(len(data)), "notes.txt")
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if res.Kind != "txt" {
		t.Errorf("kind: %q", res.Kind)
	}
	if res.Content != "meeting notes\nsecond line" {
		t.Errorf("content: %q", res.Content)
	}
}

func TestFromFile_Markdown(t *testing.T) {
	data := []byte("# Agenda\n- item")
	res, err := FromFile(bytes.NewReader(data), int64(len(data)), "agenda.MD")
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if res.Kind != "txt" {
		t.Errorf("kind: %q", res.Kind)
	}
}

func TestFromFile_VTT(t *testing.T) {
	data := []byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello world\n")
	res, err := FromFile(bytes.NewReader(data), int64(len(data)), "meeting.vtt")
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if res.Kind != "vtt" {
		t.Errorf("kind: %q", res.Kind)
	}
	if res.Content != "Hello world" {
		t.Errorf("content: %q", res.Content)
	}
	if res.UsedFallback {
		t.Error("fallback flagged on well-formed input")
	}
}

func TestFromFile_VTTNoHeader(t *testing.T) {
	data := []byte("just a plain text file renamed to .vtt")
	_, err := FromFile(bytes.NewReader(data), int64(len(data)), "fake.vtt")
	if !errors.Is(err, vtt.ErrNoHeader) {
		t.Errorf("err = %v, want ErrNoHeader", err)
	}
}

func TestFromFile_DOCX(t *testing.T) {
	const documentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second</w:t></w:r><w:r><w:tab/><w:t>with tab</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Third</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	res, err := FromFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()), "doc.docx")
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if res.Kind != "docx" {
		t.Errorf("kind: %q", res.Kind)
	}
	want := "First paragraph\nSecond\twith tab\nThird"
	if res.Content != want {
		t.Errorf("content:\n got %q\nwant %q", res.Content, want)
	}
}

func TestFromFile_DOCXMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, _ := zw.Create("something-else.xml")
	f.Write([]byte("<x/>"))
	zw.Close()

	if _, err := FromFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()), "doc.docx"); err == nil {
		t.Error("expected error for archive without word/document.xml")
	}
}

func TestFromFile_UnsupportedExtension(t *testing.T) {
	data := []byte("x")
	if _, err := FromFile(bytes.NewReader(data), 1, "audio.mp3"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
