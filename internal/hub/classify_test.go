package hub

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

type stubLookup struct {
	url string
	err error
}

func (s *stubLookup) Lookup(context.Context, string) (string, error) {
	return s.url, s.err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		msg         string
		lookup      Lookup
		wantKind    domain.MessageKind
		wantPayload string
	}{
		{
			name:        "plain text",
			msg:         "hello everyone",
			wantKind:    domain.KindText,
			wantPayload: "hello everyone",
		},
		{
			name:        "assistant trigger keeps original text",
			msg:         "@bot what is the weather",
			wantKind:    domain.KindAI,
			wantPayload: "@bot what is the weather",
		},
		{
			name:        "movie with direct url",
			msg:         "@movie https://example.com/film",
			wantKind:    domain.KindMovie,
			wantPayload: "https://embed/?url=https://example.com/film",
		},
		{
			name:        "movie title resolved",
			msg:         "@movie Inception",
			lookup:      &stubLookup{url: "https://cdn.example.com/stream.m3u8"},
			wantKind:    domain.KindMovie,
			wantPayload: "https://embed/?url=https://cdn.example.com/stream.m3u8",
		},
		{
			name:        "movie title not found",
			msg:         "@movie Unknown Film",
			lookup:      &stubLookup{},
			wantKind:    domain.KindMovie,
			wantPayload: "",
		},
		{
			name:        "movie lookup failure is an empty payload",
			msg:         "@movie Inception",
			lookup:      &stubLookup{err: errors.New("catalog down")},
			wantKind:    domain.KindMovie,
			wantPayload: "",
		},
		{
			name:        "movie trigger without argument",
			msg:         "@movie",
			wantKind:    domain.KindMovie,
			wantPayload: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := NewClassifier("bot", "@movie", "https://embed/?url=", tt.lookup)
			got := cl.Classify(tt.msg)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantPayload, got.Payload)
			assert.Equal(t, tt.msg, got.Original)
		})
	}
}

func TestQuery(t *testing.T) {
	cl := NewClassifier("bot", "@movie", "https://embed/?url=", nil)

	query, ok := cl.Query("@bot tell me about campus")
	assert.True(t, ok)
	assert.Equal(t, "tell me about campus", query)

	query, ok = cl.Query("@bot")
	assert.True(t, ok)
	assert.Equal(t, "你好", query)

	_, ok = cl.Query("no trigger here")
	assert.False(t, ok)
}
