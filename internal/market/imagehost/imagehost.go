// Package imagehost abstracts where uploaded pictures are stored. Drivers
// live in subpackages: cloudinary (production), s3 (any S3 compatible store)
// and local (filesystem, development).
package imagehost

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/market/internal/market/domain"
)

// Folders used by the service.
const (
	AvatarFolder = "/vinted/picture"
	OffersFolder = "/vinted/offers"
)

var ErrNotFound = errors.New("imagehost: asset not found")

// File is an upload in flight. Body is read exactly once.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Host stores pictures and removes them again by public id.
type Host interface {
	Upload(ctx context.Context, f File, folder string) (domain.Image, error)
	Destroy(ctx context.Context, publicID string) error
}

// OfferFolder is the folder an offer's picture is uploaded to.
func OfferFolder(offerID string) string {
	return path.Join(OffersFolder, offerID)
}

// Open turns a multipart upload into a File. The caller closes the returned
// closer once the upload is done.
func Open(fh *multipart.FileHeader) (File, io.Closer, error) {
	src, err := fh.Open()
	if err != nil {
		return File{}, nil, err
	}
	return File{
		Name:        fh.Filename,
		ContentType: ContentType(fh.Filename, fh.Header.Get("Content-Type")),
		Size:        fh.Size,
		Body:        src,
	}, src, nil
}

// ContentType prefers the declared type and falls back to the extension.
func ContentType(name, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Format is the lower-cased extension without the dot, e.g. "jpg".
func Format(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Key joins a folder and a file name into an object key without a leading
// slash, e.g. "vinted/offers/123/01J....jpg".
func Key(folder, name string) string {
	return strings.TrimPrefix(path.Join(folder, name), "/")
}
