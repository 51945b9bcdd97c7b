package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"
)

// DefaultMaxBodyBytes bounds request bodies, uploads included.
const DefaultMaxBodyBytes int64 = 10 << 20

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling file parts to disk.
const multipartMemory int64 = 8 << 20

// ErrInvalidBody wraps every decoding failure so handlers can map them to a
// single 400 without inspecting the cause.
var ErrInvalidBody = errors.New("invalid request body")

// BodyError describes why a request body was rejected.
type BodyError struct {
	Reason string
	Err    error
}

func (e *BodyError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *BodyError) Unwrap() []error { return []error{ErrInvalidBody, e.Err} }

// IsJSON reports whether the request declares a JSON body.
func IsJSON(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

// DecodeJSON decodes a single JSON object into dst. Unknown fields and
// trailing data are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &BodyError{Reason: "malformed JSON", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &BodyError{Reason: "unexpected data after JSON object"}
	}
	return nil
}

// ParseForm parses a multipart or urlencoded body. Calling it after the form
// has already been parsed (e.g. by a rate limit key extractor) is a no-op.
func ParseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if ct == "multipart/form-data" {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return &BodyError{Reason: "malformed form", Err: err}
	}
	return nil
}

// UnknownFields lists body fields (text and file parts) that are not in
// allowed. Query parameters are ignored.
func UnknownFields(r *http.Request, allowed ...string) []string {
	var unknown []string
	check := func(key string) {
		if !slices.Contains(allowed, key) && !slices.Contains(unknown, key) {
			unknown = append(unknown, key)
		}
	}

	for key := range r.PostForm {
		check(key)
	}
	if r.MultipartForm != nil {
		for key := range r.MultipartForm.File {
			check(key)
		}
	}

	slices.Sort(unknown)
	return unknown
}

// RejectUnknownFields returns a BodyError naming any field outside allowed.
func RejectUnknownFields(r *http.Request, allowed ...string) error {
	if unknown := UnknownFields(r, allowed...); len(unknown) > 0 {
		return &BodyError{Reason: fmt.Sprintf("unknown field(s): %s", strings.Join(unknown, ", "))}
	}
	return nil
}

// FormFile returns the first file uploaded under any of names, or nil when
// none was sent.
func FormFile(r *http.Request, names ...string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	for _, name := range names {
		if files := r.MultipartForm.File[name]; len(files) > 0 {
			return files[0]
		}
	}
	return nil
}
