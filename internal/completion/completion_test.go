package completion

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oisee/gridbridge/pkg/grid"
)

const messageJSON = `{"id":"msg_01","type":"message","role":"assistant","model":"claude-sonnet-4-5",` +
	`"content":[{"type":"text","text":"Hello!"}],"stop_reason":"end_turn","stop_sequence":null,` +
	`"usage":{"input_tokens":3,"output_tokens":2}}`

type capturedRequest struct {
	Model     string `json:"model"`
	MaxTokens int64  `json:"max_tokens"`
	System    []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func newTestClient(t *testing.T, status int, body string, captured *capturedRequest) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return New(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "claude-test", Logger: zerolog.Nop()})
}

func TestComplete_Defaults(t *testing.T) {
	var got capturedRequest
	client := newTestClient(t, http.StatusOK, messageJSON, &got)

	raw, err := client.Complete(t.Context(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Hi"}},
	})
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, "msg_01", resp["id"])
	assert.Equal(t, "end_turn", resp["stop_reason"])

	assert.Equal(t, "claude-test", got.Model)
	assert.EqualValues(t, DefaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Hi", got.Messages[0].Content[0].Text)
	assert.Empty(t, got.System)
}

func TestComplete_Overrides(t *testing.T) {
	var got capturedRequest
	client := newTestClient(t, http.StatusOK, messageJSON, &got)

	_, err := client.Complete(t.Context(), Request{
		Model:     "claude-other",
		MaxTokens: 64,
		System:    "Be brief.",
		Messages: []Message{
			{Role: RoleUser, Content: "Hi"},
			{Role: RoleAssistant, Content: "Hello"},
			{Role: RoleUser, Content: "Bye"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "claude-other", got.Model)
	assert.EqualValues(t, 64, got.MaxTokens)
	require.Len(t, got.System, 1)
	assert.Equal(t, "Be brief.", got.System[0].Text)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "assistant", got.Messages[1].Role)
}

func TestComplete_Validation(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantField string
	}{
		{"no messages", Request{}, "messages"},
		{"bad role", Request{Messages: []Message{{Role: "system", Content: "x"}}}, "messages[0].role"},
		{"empty content", Request{Messages: []Message{{Role: RoleUser}}}, "messages[0].content"},
	}

	client := New(Config{APIKey: "unused"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Complete(t.Context(), tt.req)
			var vErr *grid.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestComplete_RemoteError(t *testing.T) {
	body := `{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens: too large"}}`
	client := newTestClient(t, http.StatusBadRequest, body, nil)

	_, err := client.Complete(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "Hi"}}})
	var remote *grid.RemoteOperationError
	require.True(t, errors.As(err, &remote), "got %v", err)
	assert.Equal(t, "completion", remote.Op)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
}
