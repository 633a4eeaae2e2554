package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name      string
		botToken  string
		chatID    string
		wantError bool
	}{
		{"valid parameters", "test-token", "12345", false},
		{"empty bot token", "", "12345", true},
		{"empty chat ID", "test-token", "", true},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.botToken, tt.chatID)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.botToken, client.botToken)
			assert.Equal(t, tt.chatID, client.chatID)
			assert.Equal(t, apiBaseURL, client.baseURL)
			assert.NotNil(t, client.httpClient)
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token", "12345")
	require.NoError(t, err)
	client.baseURL = server.URL + "/bot"
	return client
}

func TestSendMessage(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	require.NoError(t, client.SendMessage(context.Background(), "<b>hello</b>"))
	assert.Equal(t, "12345", got["chat_id"])
	assert.Equal(t, "<b>hello</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"empty message", http.StatusOK, `{"ok":true}`, ""},
		{"http error", http.StatusBadRequest, `{"ok":false,"description":"Bad Request"}`, "hi"},
		{"api not ok", http.StatusOK, `{"ok":false,"description":"chat not found"}`, "hi"},
		{"invalid json", http.StatusOK, `not json`, "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			assert.Error(t, client.SendMessage(context.Background(), tt.message))
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; c", EscapeHTML("a <b> & c"))
}
