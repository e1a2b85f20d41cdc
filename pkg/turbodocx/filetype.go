package turbodocx

import "strings"

// fileTypeInfo is the sniffed MIME type and extension of an upload.
type fileTypeInfo struct {
	mimeType  string
	extension string
}

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// detectFileType sniffs the upload type from magic bytes. DOCX and PPTX
// are both ZIP containers; they are told apart by the entry names near
// the start of the archive.
func detectFileType(b []byte) fileTypeInfo {
	if len(b) < 4 {
		return fileTypeInfo{mimeType: "application/octet-stream", extension: "bin"}
	}

	// %PDF
	if b[0] == 0x25 && b[1] == 0x50 && b[2] == 0x44 && b[3] == 0x46 {
		return fileTypeInfo{mimeType: mimePDF, extension: "pdf"}
	}

	// PK: ZIP container
	if b[0] == 0x50 && b[1] == 0x4B {
		n := len(b)
		if n > 2000 {
			n = 2000
		}
		header := string(b[:n])
		if strings.Contains(header, "ppt/") {
			return fileTypeInfo{mimeType: mimePPTX, extension: "pptx"}
		}
		// Unknown ZIP content defaults to DOCX.
		return fileTypeInfo{mimeType: mimeDOCX, extension: "docx"}
	}

	return fileTypeInfo{mimeType: "application/octet-stream", extension: "bin"}
}
