package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const elevenLabsURL = "https://api.elevenlabs.io"

// ElevenLabsClient ignores the locale: the voice id decides the language.
type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	baseURL string
	httpCli *http.Client
}

func NewElevenLabsClient(apiKey, voiceID string) *ElevenLabsClient {
	if voiceID == "" {
		voiceID = "EXAVITQu4vr4xnSDxMaL" // Rachel (дефолт)
	}

	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: elevenLabsURL,
		httpCli: http.DefaultClient,
	}
}

// TEXT → SPEECH
func (c *ElevenLabsClient) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID)

	payload, err := json.Marshal(map[string]string{"text": req.Text})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("xi-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("elevenlabs error %d: %s", resp.StatusCode, string(b))
	}

	return io.ReadAll(resp.Body)
}
