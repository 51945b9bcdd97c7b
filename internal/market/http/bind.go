package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/pkg/httpx"
	"github.com/aussiebroadwan/market/pkg/marketsdk"

	"github.com/go-playground/validator/v10"
)

// bindRequest fills dst from a JSON body, or from a form through fromForm.
// Fields outside allowed are rejected in both cases (JSON through the
// decoder's unknown-field check).
func bindRequest(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any, allowed []string, fromForm func(form formValues) error) error {
	if httpx.IsJSON(r) {
		return httpx.DecodeJSON(w, r, maxBytes, dst)
	}
	if err := httpx.ParseForm(w, r, maxBytes); err != nil {
		return err
	}
	if err := httpx.RejectUnknownFields(r, allowed...); err != nil {
		return err
	}
	return fromForm(formValues{r: r})
}

type formValues struct {
	r *http.Request
}

func (f formValues) get(key string) string { return f.r.PostForm.Get(key) }

// float parses a required number.
func (f formValues) float(key string) (float64, error) {
	raw := strings.TrimSpace(f.get(key))
	if raw == "" {
		return 0, &httpx.BodyError{Reason: key + " is required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &httpx.BodyError{Reason: key + " must be a number", Err: err}
	}
	return v, nil
}

// checkFields validates req and ignores failures on required fields, which
// the services report themselves with their own messages and precedence.
func checkFields(req any) error {
	err := marketsdk.Validate(req)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var bad []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_without":
			continue
		}
		bad = append(bad, fe.Field())
	}
	if len(bad) == 0 {
		return nil
	}
	return &httpx.BodyError{Reason: "invalid field(s): " + strings.Join(bad, ", ")}
}

// openPicture opens the first file sent under any of names. The returned
// closer is a no-op when no file was sent.
func openPicture(r *http.Request, names ...string) (*imagehost.File, io.Closer, error) {
	fh := httpx.FormFile(r, names...)
	if fh == nil {
		return nil, io.NopCloser(nil), nil
	}
	return openFileHeader(fh)
}

func openFileHeader(fh *multipart.FileHeader) (*imagehost.File, io.Closer, error) {
	f, closer, err := imagehost.Open(fh)
	if err != nil {
		return nil, nil, &httpx.BodyError{Reason: "unreadable upload", Err: err}
	}
	return &f, closer, nil
}
