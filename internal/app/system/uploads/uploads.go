// internal/app/system/uploads/uploads.go
//
// Package uploads reads image files from multipart admin requests and turns
// them into inline models.Image values (base64 data plus MIME type).
//
// The body is streamed part by part. For each file field the first maxFiles
// parts are read into memory and checked by magic bytes, not by the
// declared Content-Type or file extension; later parts of the same field
// are discarded unread. No document is written until every kept file in the
// request has been read.
package uploads

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/h2non/filetype"
)

// DefaultMaxFileBytes is the per-file limit when none is configured.
const DefaultMaxFileBytes int64 = 10 << 20

// fieldSlack is the room left for plain text fields on top of the JSON
// image lists (existingImages) a form may carry.
const fieldSlack int64 = 1 << 20

// sniffLen is how much of a file is inspected for magic bytes.
const sniffLen = 512

var (
	// ErrNotImage is returned for files whose content is not a recognised image.
	ErrNotImage = errors.New("Only image files are allowed")
	// ErrBadForm is returned when the request body is not a readable form.
	ErrBadForm = errors.New("Invalid form data")
)

// TooLargeError is returned when a kept file exceeds the per-file limit.
type TooLargeError struct {
	MaxBytes int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("File too large. Maximum size is %d MB.", e.MaxBytes>>20)
}

// RequestTooLargeError is returned when the whole body, or its text fields,
// exceed what a form with this many files may send.
type RequestTooLargeError struct {
	MaxBytes int64
}

func (e *RequestTooLargeError) Error() string {
	return fmt.Sprintf("Request too large. Maximum upload size is %d MB.", e.MaxBytes>>20)
}

// IsClientError reports whether err should be shown to the caller as a 400.
func IsClientError(err error) bool {
	var (
		tl  *TooLargeError
		rtl *RequestTooLargeError
	)
	return errors.Is(err, ErrNotImage) || errors.Is(err, ErrBadForm) ||
		errors.As(err, &tl) || errors.As(err, &rtl)
}

// Limits are the size bounds ParseForm applies for a form with up to
// MaxFiles kept files per field.
type Limits struct {
	MaxFiles     int
	MaxFileBytes int64
}

func (l Limits) normalized() Limits {
	if l.MaxFileBytes <= 0 {
		l.MaxFileBytes = DefaultMaxFileBytes
	}
	if l.MaxFiles < 1 {
		l.MaxFiles = 1
	}
	return l
}

// FieldBytes is the budget for all non-file fields: enough for a JSON
// list of MaxFiles base64 images plus fieldSlack.
func (l Limits) FieldBytes() int64 {
	l = l.normalized()
	return int64(l.MaxFiles)*int64(base64.StdEncoding.EncodedLen(int(l.MaxFileBytes))) + fieldSlack
}

// BodyBytes caps the request body. File parts get twice the kept budget so
// a few surplus uploads can be discarded instead of failing the request.
func (l Limits) BodyBytes() int64 {
	l = l.normalized()
	return 2*int64(l.MaxFiles)*l.MaxFileBytes + l.FieldBytes()
}

// Files holds the images kept from a parsed request, by form field.
type Files struct {
	byField map[string][]models.Image
	// Dropped counts file parts discarded past the per-field limit.
	Dropped int
}

// Images returns the kept images of field in submission order.
func (f *Files) Images(field string) []models.Image {
	if f == nil {
		return nil
	}
	return f.byField[field]
}

// Image returns the first kept image of field, or nil when none was sent.
func (f *Files) Image(field string) *models.Image {
	imgs := f.Images(field)
	if len(imgs) == 0 {
		return nil
	}
	img := imgs[0]
	return &img
}

// ParseForm reads a multipart or urlencoded body. Text fields land in
// r.PostForm and r.Form as usual; the first maxFiles files of each file
// field are sniffed, size-checked and returned. A non-image or oversize
// kept file fails the whole request.
func ParseForm(w http.ResponseWriter, r *http.Request, maxFiles int, maxFileBytes int64) (*Files, error) {
	lim := Limits{MaxFiles: maxFiles, MaxFileBytes: maxFileBytes}.normalized()
	r.Body = http.MaxBytesReader(w, r.Body, lim.BodyBytes())

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseForm(); err != nil {
			return nil, classify(err, lim)
		}
		return &Files{}, nil
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, ErrBadForm
	}

	values := url.Values{}
	files := &Files{byField: map[string][]models.Image{}}
	fieldBudget := lim.FieldBytes()

	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classify(err, lim)
		}

		name := p.FormName()
		if name == "" {
			p.Close()
			continue
		}

		if p.FileName() == "" {
			data, err := io.ReadAll(io.LimitReader(p, fieldBudget+1))
			p.Close()
			if err != nil {
				return nil, classify(err, lim)
			}
			fieldBudget -= int64(len(data))
			if fieldBudget < 0 {
				return nil, &RequestTooLargeError{MaxBytes: lim.BodyBytes()}
			}
			values.Add(name, string(data))
			continue
		}

		if len(files.byField[name]) >= lim.MaxFiles {
			_, err := io.Copy(io.Discard, p)
			p.Close()
			if err != nil {
				return nil, classify(err, lim)
			}
			files.Dropped++
			continue
		}

		img, err := readPart(p, lim)
		p.Close()
		if err != nil {
			return nil, err
		}
		files.byField[name] = append(files.byField[name], img)
	}

	r.PostForm = values
	r.Form = url.Values{}
	for k, v := range values {
		r.Form[k] = append(r.Form[k], v...)
	}
	for k, v := range r.URL.Query() {
		r.Form[k] = append(r.Form[k], v...)
	}
	r.MultipartForm = &multipart.Form{Value: values, File: map[string][]*multipart.FileHeader{}}
	return files, nil
}

func readPart(p *multipart.Part, lim Limits) (models.Image, error) {
	data, err := io.ReadAll(io.LimitReader(p, lim.MaxFileBytes+1))
	if err != nil {
		return models.Image{}, classify(err, lim)
	}
	if int64(len(data)) > lim.MaxFileBytes {
		return models.Image{}, &TooLargeError{MaxBytes: lim.MaxFileBytes}
	}
	return Encode(data)
}

// classify maps body read failures to the request-size error or ErrBadForm.
func classify(err error, lim Limits) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &RequestTooLargeError{MaxBytes: lim.BodyBytes()}
	}
	return ErrBadForm
}

// Encode sniffs data and returns it as an inline image.
func Encode(data []byte) (models.Image, error) {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || kind.MIME.Type != "image" {
		return models.Image{}, ErrNotImage
	}
	return models.Image{
		Data:        base64.StdEncoding.EncodeToString(data),
		ContentType: kind.MIME.Value,
	}, nil
}

// Truncate returns at most max images, keeping order.
func Truncate(imgs []models.Image, max int) []models.Image {
	if max >= 0 && len(imgs) > max {
		return imgs[:max]
	}
	return imgs
}

// Merge is the keep/replace rule for image lists on update: the kept
// images first, then the new uploads, capped at max.
func Merge(kept, added []models.Image, max int) []models.Image {
	out := make([]models.Image, 0, len(kept)+len(added))
	for _, img := range kept {
		if !img.IsZero() {
			out = append(out, img)
		}
	}
	out = append(out, added...)
	return Truncate(out, max)
}

// ErrBadImageList is returned by ParseImageList for malformed JSON.
var ErrBadImageList = errors.New("existingImages must be valid JSON")

// ParseImageList decodes a JSON array of images sent as a form field
// (existingImages). Empty input yields nil.
func ParseImageList(raw string) ([]models.Image, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var imgs []models.Image
	if err := json.Unmarshal([]byte(raw), &imgs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImageList, err)
	}
	return imgs, nil
}
