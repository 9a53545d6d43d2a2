package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatClient is a ChatClient whose behaviour is set per test.
type fakeChatClient struct {
	readyErr error
	content  string
	err      error
	calls    []CompletionRequest
}

func (f *fakeChatClient) Ready() error { return f.readyErr }

func (f *fakeChatClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.content, f.err
}

func TestBuildCompletionRequest(t *testing.T) {
	req, err := BuildCompletionRequest("Photosynthesis basics", 7)

	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis basics", req.User)
	assert.Contains(t, req.System, "exactly 7 flashcards")
	assert.Contains(t, req.System, "JSON array")
	assert.Contains(t, req.System, `"question"`)
	assert.Contains(t, req.System, `"answer"`)

	_, err = BuildCompletionRequest("x", 0)
	assert.Error(t, err)
}

func TestNewServiceRequiresClient(t *testing.T) {
	svc, err := NewService(nil, nil)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestServiceGenerateFlashcards(t *testing.T) {
	client := &fakeChatClient{content: "```json\n" + twoCards + "\n```"}
	svc, err := NewService(client, nil)
	require.NoError(t, err)

	cards, err := svc.GenerateFlashcards(context.Background(), "French capitals", 2)

	require.NoError(t, err)
	assert.Equal(t, []domain.FlashcardContent{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}, cards)
	require.Len(t, client.calls, 1)
	assert.Equal(t, "French capitals", client.calls[0].User)
	assert.Contains(t, client.calls[0].System, "exactly 2 flashcards")
}

func TestServiceMissingAPIKeyMakesNoCall(t *testing.T) {
	client := &fakeChatClient{readyErr: ErrMissingAPIKey}
	svc, err := NewService(client, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Ready(), ErrMissingAPIKey)

	_, err = svc.GenerateFlashcards(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Empty(t, client.calls)
}

func TestServiceEmptyPrompt(t *testing.T) {
	client := &fakeChatClient{}
	svc, err := NewService(client, nil)
	require.NoError(t, err)

	_, err = svc.GenerateFlashcards(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Empty(t, client.calls)
}

func TestServicePropagatesErrors(t *testing.T) {
	upstream := &UpstreamError{StatusCode: 429, Body: []byte(`{"error":"rate limited"}`)}

	tests := []struct {
		name    string
		client  *fakeChatClient
		wantErr error
	}{
		{"upstream status", &fakeChatClient{err: upstream}, upstream},
		{"not an array", &fakeChatClient{content: `{"foo":1}`}, ErrInvalidResponse},
		{"nothing valid", &fakeChatClient{content: `[{"question":"Q"}]`}, ErrNoValidFlashcards},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := NewService(tc.client, nil)
			require.NoError(t, err)

			cards, err := svc.GenerateFlashcards(context.Background(), "topic", 3)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, cards)
			assert.Len(t, tc.client.calls, 1, "exactly one attempt, no retry")
		})
	}
}

func TestUpstreamErrorMessage(t *testing.T) {
	var err error = &UpstreamError{StatusCode: 503}
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "LLM API returned status 503", err.Error())
}
