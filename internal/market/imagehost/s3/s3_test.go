package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/internal/market/imagehost/s3"
	"github.com/stretchr/testify/require"
)

const bucket = "market-media"

// bucketAPI answers path-style PutObject and DeleteObject calls.
type bucketAPI struct {
	mu       sync.Mutex
	requests []string
	deny     bool
}

func (b *bucketAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	_, _ = io.Copy(io.Discard, r.Body)

	if b.deny {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
		return
	}

	switch r.Method {
	case http.MethodPut:
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newHost(t *testing.T, publicURL string) (*s3.Host, *bucketAPI, string) {
	t.Helper()

	api := &bucketAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	host, err := s3.New(context.Background(), s3.Config{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    bucket,
		AccessKey: "test",
		SecretKey: "test",
		PublicURL: publicURL,
	})
	require.NoError(t, err)
	return host, api, srv.URL
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := s3.New(context.Background(), s3.Config{Region: "us-east-1"})
	require.Error(t, err)
}

func TestUploadAndDestroy(t *testing.T) {
	ctx := context.Background()
	host, api, endpoint := newHost(t, "")

	body := "png-bytes"
	img, err := host.Upload(ctx, imagehost.File{
		Name:        "shoe.PNG",
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}, imagehost.OfferFolder("42"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(img.PublicID, "vinted/offers/42/"))
	require.True(t, strings.HasSuffix(img.PublicID, ".png"))
	require.Equal(t, endpoint+"/"+bucket+"/"+img.PublicID, img.SecureURL)
	require.Equal(t, img.SecureURL, img.URL)
	require.Equal(t, "png", img.Format)
	require.EqualValues(t, len(body), img.Bytes)

	require.NoError(t, host.Destroy(ctx, img.PublicID))

	require.Equal(t, []string{
		http.MethodPut + " /" + bucket + "/" + img.PublicID,
		http.MethodDelete + " /" + bucket + "/" + img.PublicID,
	}, api.requests)
}

func TestPublicURLOverride(t *testing.T) {
	host, _, _ := newHost(t, "https://cdn.example.com/")

	img, err := host.Upload(context.Background(), imagehost.File{
		Name: "a.jpg",
		Size: 1,
		Body: strings.NewReader("x"),
	}, imagehost.AvatarFolder)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/"+img.PublicID, img.SecureURL)
	require.True(t, strings.HasPrefix(img.PublicID, "vinted/picture/"))
}

func TestErrorsAreReturned(t *testing.T) {
	ctx := context.Background()
	host, api, _ := newHost(t, "")
	api.deny = true

	_, err := host.Upload(ctx, imagehost.File{Name: "a.jpg", Size: 1, Body: strings.NewReader("x")}, imagehost.AvatarFolder)
	require.ErrorContains(t, err, "AccessDenied")

	err = host.Destroy(ctx, "vinted/picture/a.jpg")
	require.ErrorContains(t, err, "AccessDenied")
}
