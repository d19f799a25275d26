package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
)

// PNG is the smallest byte sequence upload sniffing accepts as an image.
var PNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// File is one file part of a multipart request.
type File struct {
	Field string
	Name  string
	Data  []byte
}

// NewMultipartRequest builds a multipart/form-data request. Files are
// written in the order given.
func NewMultipartRequest(method, target string, fields map[string]string, files ...File) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for _, f := range files {
		fw, _ := mw.CreateFormFile(f.Field, f.Name)
		_, _ = fw.Write(f.Data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
