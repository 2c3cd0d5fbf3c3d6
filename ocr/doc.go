// Package ocr extracts positioned words from table rasters with the
// Tesseract engine via gosseract.
//
// Tesseract support is compiled only with the "ocr" build tag:
//
//	go build -tags ocr ./...
//
// Without it [New] returns [ErrOCRNotEnabled]. Tesseract and the language
// data must be installed on the system (apt-get install tesseract-ocr
// tesseract-ocr-spa).
package ocr
