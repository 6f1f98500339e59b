package capture

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/models"
)

// MaxImageBytes caps a single attached or moodboard image
const MaxImageBytes = 10 << 20

var (
	ErrCancelled = errors.New("no image selected")
	ErrNotImage  = errors.New("file is not an image")
	ErrTooLarge  = errors.New("image is too large")
)

// ReadImageFile loads an image file as a data URI
func ReadImageFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > MaxImageBytes {
		return "", fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s: %w", path, ErrNotImage)
	}

	return advice.EncodeDataURI(mimeType, data), nil
}

// FileImagePicker asks for a file path and loads it
type FileImagePicker struct {
	ReadPath func() (string, error)
}

func (p FileImagePicker) Pick(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := p.ReadPath()
	if err != nil {
		return "", err
	}
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	if path == "" {
		return "", ErrCancelled
	}
	return ReadImageFile(path)
}

// LoadMoodImages reads every path concurrently and returns the images in
// input order. Any failure aborts the whole batch.
func LoadMoodImages(ctx context.Context, paths []string) ([]models.MoodImage, error) {
	images := make([]models.MoodImage, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			uri, err := ReadImageFile(path)
			if err != nil {
				return err
			}
			images[i] = models.MoodImage{URL: uri, Prompt: filepath.Base(path)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
