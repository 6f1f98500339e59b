package capture

import (
	"context"
	"strings"

	"wedding-planner/internal/advice"
)

// UnsupportedRecognizer reports that speech input is unavailable
type UnsupportedRecognizer struct{}

func (UnsupportedRecognizer) Listen(ctx context.Context) ([]string, error) {
	return nil, advice.ErrVoiceUnsupported
}

// LineRecognizer treats one line of text, such as the output of an external
// dictation tool, as the only transcription candidate
type LineRecognizer struct {
	ReadLine func() (string, error)
}

func (r LineRecognizer) Listen(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	line, err := r.ReadLine()
	if err != nil {
		return nil, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	return []string{line}, nil
}
