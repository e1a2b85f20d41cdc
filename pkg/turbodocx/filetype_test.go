package turbodocx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFileType(t *testing.T) {
	zipWith := func(entry string) []byte {
		return append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte(entry)...)
	}

	tests := []struct {
		name     string
		data     []byte
		wantMIME string
		wantExt  string
	}{
		{"pdf", []byte("%PDF-1.7 rest"), mimePDF, "pdf"},
		{"pptx zip", zipWith("ppt/slides/slide1.xml"), mimePPTX, "pptx"},
		{"docx zip", zipWith("word/document.xml"), mimeDOCX, "docx"},
		{"unknown zip defaults to docx", zipWith("mystery.bin"), mimeDOCX, "docx"},
		{"unknown bytes", []byte{0x00, 0x01, 0x02, 0x03, 0x04}, "application/octet-stream", "bin"},
		{"too short", []byte{0x25}, "application/octet-stream", "bin"},
		{"empty", nil, "application/octet-stream", "bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFileType(tt.data)
			assert.Equal(t, tt.wantMIME, got.mimeType)
			assert.Equal(t, tt.wantExt, got.extension)
		})
	}
}

func TestDetectFileType_ScansOnlyTheHeader(t *testing.T) {
	// A "ppt/" marker past the 2000-byte window must not flip the result.
	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 3000)...)
	data = append(data, []byte("ppt/slides/slide1.xml")...)

	got := detectFileType(data)
	assert.Equal(t, mimeDOCX, got.mimeType)
}
