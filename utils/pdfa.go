package utils

import (
	"bytes"
	"os"
)

// pdfaMarkers are XMP metadata tags that identify a PDF/A document.
// This is a lightweight identification check, not full conformance
// validation.
var pdfaMarkers = [][]byte{
	[]byte("pdfaid:part"),
	[]byte("http://www.aiim.org/pdfa/ns/id/"),
}

var pdfSignature = []byte("%PDF-")

// IsPDFA reports whether the file at path is a well-formed PDF
// carrying PDF/A identification metadata.
func IsPDFA(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	if !bytes.HasPrefix(data, pdfSignature) {
		return false, nil
	}

	for _, marker := range pdfaMarkers {
		if bytes.Contains(data, marker) {
			return true, nil
		}
	}
	return false, nil
}
