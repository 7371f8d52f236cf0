package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionsServer(t *testing.T, calls *int32, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestReplyCallsChatCompletions(t *testing.T) {
	var calls int32
	server := completionsServer(t, &calls, "the answer")
	defer server.Close()

	client := New(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	})

	reply, err := client.Reply(context.Background(), "a question")
	require.NoError(t, err)
	assert.Equal(t, "the answer", reply)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestReplyDeflectKeywordSkipsAPI(t *testing.T) {
	var calls int32
	server := completionsServer(t, &calls, "unused")
	defer server.Close()

	client := New(Config{
		BaseURL:         server.URL,
		Model:           "test-model",
		DeflectKeywords: []string{"rival-uni"},
	})

	reply, err := client.Reply(context.Background(), "what about rival-uni?")
	require.NoError(t, err)
	assert.Equal(t, "🙄", reply)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestReplyNoticeTemplate(t *testing.T) {
	var calls int32
	server := completionsServer(t, &calls, "unused")
	defer server.Close()

	client := New(Config{
		BaseURL:        server.URL,
		Model:          "test-model",
		NoticeKeywords: []string{"活动通知"},
	})

	reply, err := client.Reply(context.Background(), "生成活动通知 主题：春游 时间：周六")
	require.NoError(t, err)
	assert.Contains(t, reply, "主题：春游 时间：周六")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestReplyUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Model: "test-model"})

	_, err := client.Reply(context.Background(), "a question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestReplyNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Model: "test-model"})

	_, err := client.Reply(context.Background(), "a question")
	assert.Error(t, err)
}
