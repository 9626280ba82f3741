package response

import (
	"context"
	"errors"
	"testing"

	"payment-support-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestGenerateSuccess(t *testing.T) {
	g := NewGenerator(&stubProvider{reply: "the answer"}, nil)

	got, err := g.Generate(context.Background(), []llm.Message{{Role: "user", Content: "q"}})
	require.NoError(t, err)
	assert.Equal(t, "the answer", got)
}

func TestGenerateMapsTimeout(t *testing.T) {
	g := NewGenerator(&stubProvider{err: context.DeadlineExceeded}, nil)

	_, err := g.Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGenerateMapsUnavailable(t *testing.T) {
	g := NewGenerator(&stubProvider{err: errors.New("connection refused")}, nil)

	_, err := g.Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateExpiredContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGenerator(&stubProvider{err: ctx.Err()}, nil)

	_, err := g.Generate(ctx, nil)
	if !errors.Is(err, ErrUnavailable) && !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want a generation error", err)
	}
}
