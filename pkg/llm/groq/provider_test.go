package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voiceread-be/pkg/llm"
)

func testProvider(url string) *GroqProvider {
	p := NewGroqProvider("test-key", "")
	p.BaseURL = url
	return p
}

func TestChat(t *testing.T) {
	var gotReq groqChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal(err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	got, err := p.Chat(context.Background(),
		[]llm.Message{
			{Role: "user", Content: "hi"},
			{Role: "model", Content: "earlier reply"},
		},
		llm.WithTemperature(0.3), llm.WithMaxTokens(100),
	)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello there" {
		t.Fatalf("got %q", got)
	}

	if gotReq.Model != DefaultModel {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("Chat must not request streaming")
	}
	if gotReq.Temperature != 0.3 || gotReq.MaxTokens != 100 {
		t.Errorf("options not forwarded: %+v", gotReq)
	}
	// The provider-agnostic "model" role maps to OpenAI's "assistant".
	if gotReq.Messages[1].Role != "assistant" {
		t.Errorf("role = %q, want assistant", gotReq.Messages[1].Role)
	}
}

func TestChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req groqChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !req.Stream {
			t.Error("ChatStream must request streaming")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, ": keepalive comment\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n\n")
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	stream, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	for tok := range stream {
		b.WriteString(tok)
	}
	if b.String() != "Hello" {
		t.Fatalf("streamed %q, want Hello", b.String())
	}
}

func TestChatStreamCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"tok\"}}]}\n\n")
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	p := testProvider(srv.URL)
	stream, err := p.ChatStream(ctx, []llm.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatal(err)
	}

	<-stream
	cancel()

	// The channel must close once the consumer abandons the stream.
	for range stream {
	}
}

func TestMissingAPIKey(t *testing.T) {
	p := NewGroqProvider("", "")
	if _, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("missing api key should error")
	}
	if _, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("missing api key should error")
	}
}

func TestUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("err = %v, want a status 429 error", err)
	}
}
