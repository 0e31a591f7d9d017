package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestElevenLabsClientSynthesize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/text-to-speech/voice-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "key" {
			t.Errorf("missing api key header")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["text"] != `say "hi"` {
			t.Errorf("unexpected text %q", body["text"])
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte{0xFF, 0xFB})
	}))
	defer srv.Close()

	c := NewElevenLabsClient("key", "voice-1")
	c.baseURL = srv.URL

	data, err := c.Synthesize(context.Background(), SynthesisRequest{Text: `say "hi"`, LocaleCode: "en-US"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 2 || data[0] != 0xFF {
		t.Fatalf("unexpected audio %v", data)
	}
}

func TestElevenLabsClientErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "voice not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewElevenLabsClient("key", "")
	c.baseURL = srv.URL

	if _, err := c.Synthesize(context.Background(), SynthesisRequest{Text: "x"}); err == nil {
		t.Fatal("expected error for 404")
	}
}
