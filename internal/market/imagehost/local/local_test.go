package local_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/internal/market/imagehost/local"
	"github.com/stretchr/testify/require"
)

func TestUploadServeDestroy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	host, err := local.New(dir, "http://localhost:8080/media/")
	require.NoError(t, err)

	img, err := host.Upload(ctx, imagehost.File{
		Name:        "shoe.JPG",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpeg-bytes"),
	}, imagehost.OfferFolder("abc"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(img.PublicID, "vinted/offers/abc/"))
	require.True(t, strings.HasSuffix(img.PublicID, ".jpg"))
	require.Equal(t, "http://localhost:8080/media/"+img.PublicID, img.SecureURL)
	require.Equal(t, "jpg", img.Format)
	require.EqualValues(t, len("jpeg-bytes"), img.Bytes)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(img.PublicID)))
	require.NoError(t, err)
	require.Equal(t, "jpeg-bytes", string(data))

	t.Run("handler serves the file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, local.MediaPrefix+img.PublicID, nil)
		rec := httptest.NewRecorder()
		host.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		require.Equal(t, "jpeg-bytes", string(body))
	})

	require.NoError(t, host.Destroy(ctx, img.PublicID))
	require.ErrorIs(t, host.Destroy(ctx, img.PublicID), imagehost.ErrNotFound)
}

func TestDestroyRejectsEscapingKeys(t *testing.T) {
	host, err := local.New(t.TempDir(), "/media")
	require.NoError(t, err)

	require.Error(t, host.Destroy(context.Background(), "../etc/passwd"))
	require.Error(t, host.Destroy(context.Background(), "/etc/passwd"))
}
