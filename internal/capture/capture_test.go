package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/internal/advice"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadImageFile(t *testing.T) {
	dir := t.TempDir()

	uri, err := ReadImageFile(writeFile(t, dir, "dress.png", pngHeader))
	require.NoError(t, err)
	img, err := advice.ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, pngHeader, img.Data)

	// no extension, sniffed from content
	uri, err = ReadImageFile(writeFile(t, dir, "venue", pngHeader))
	require.NoError(t, err)
	img, err = advice.ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)

	_, err = ReadImageFile(writeFile(t, dir, "notes.txt", []byte("hello")))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = ReadImageFile(filepath.Join(dir, "missing.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileImagePicker(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cake.png", pngHeader)

	picker := FileImagePicker{ReadPath: func() (string, error) { return ` "` + path + `" `, nil }}
	uri, err := picker.Pick(context.Background())
	require.NoError(t, err)
	assert.Contains(t, uri, "data:image/png;base64,")

	empty := FileImagePicker{ReadPath: func() (string, error) { return "  ", nil }}
	_, err = empty.Pick(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestLoadMoodImagesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png", "e.png", "f.png"} {
		paths = append(paths, writeFile(t, dir, name, pngHeader))
	}

	images, err := LoadMoodImages(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, images, len(paths))
	for i, img := range images {
		assert.Equal(t, filepath.Base(paths[i]), img.Prompt)
		assert.Contains(t, img.URL, "data:image/png;base64,")
	}
}

func TestLoadMoodImagesFails(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeFile(t, dir, "a.png", pngHeader), filepath.Join(dir, "missing.png")}

	_, err := LoadMoodImages(context.Background(), paths)
	assert.Error(t, err)
}

func TestRecognizers(t *testing.T) {
	_, err := UnsupportedRecognizer{}.Listen(context.Background())
	assert.ErrorIs(t, err, advice.ErrVoiceUnsupported)

	got, err := LineRecognizer{ReadLine: func() (string, error) { return " book the florist \n", nil }}.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"book the florist"}, got)

	got, err = LineRecognizer{ReadLine: func() (string, error) { return "", nil }}.Listen(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	eof := errors.New("eof")
	_, err = LineRecognizer{ReadLine: func() (string, error) { return "", eof }}.Listen(context.Background())
	assert.ErrorIs(t, err, eof)
}
