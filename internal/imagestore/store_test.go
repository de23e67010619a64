package imagestore_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/imagestore"
)

func TestStore_SaveDataURL(t *testing.T) {
	dir := t.TempDir()
	store, err := imagestore.New(dir, "/media/")
	require.NoError(t, err)

	payload := []byte("fake png bytes")
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	url, err := store.SaveDataURL(dataURL)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/"), "url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "url %q", url)

	// The decoded bytes must land on disk under the returned name.
	name := strings.TrimPrefix(url, "/media/")
	written, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, payload, written)
}

func TestStore_SaveDataURL_UniqueNames(t *testing.T) {
	store, err := imagestore.New(t.TempDir(), "/media")
	require.NoError(t, err)

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

	a, err := store.SaveDataURL(dataURL)
	require.NoError(t, err)
	b, err := store.SaveDataURL(dataURL)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestStore_SaveDataURL_Malformed(t *testing.T) {
	store, err := imagestore.New(t.TempDir(), "/media")
	require.NoError(t, err)

	cases := []string{
		"",
		"plain text",
		"data:image/png,no-base64-marker",
		"data:text/plain;base64,aGVsbG8=",        // not an image
		"data:image/png;base64,!!!not-base64!!!", // broken encoding
		"data:image/;base64,aGVsbG8=",            // empty extension
		"data:image/../evil;base64,aGVsbG8=",     // path traversal in extension
	}
	for _, dataURL := range cases {
		_, err := store.SaveDataURL(dataURL)
		assert.ErrorIs(t, err, domain.ErrValidation, "payload %q", dataURL)
	}
}

func TestStore_New_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "media")

	store, err := imagestore.New(dir, "/media")
	require.NoError(t, err)

	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
