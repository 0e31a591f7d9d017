package speech

import (
	"context"
	"fmt"

	"cloud.google.com/go/auth/credentials"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

type googleSpeechAPI interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
}

// GoogleTTSClient wraps Google Cloud Text-to-Speech with fixed MP3 output.
type GoogleTTSClient struct {
	api   googleSpeechAPI
	close func() error
}

// NewGoogleTTSClient builds a client from a service account JSON file.
// With an empty path the default application credentials are used.
func NewGoogleTTSClient(ctx context.Context, credentialsFile string) (*GoogleTTSClient, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes:          texttospeech.DefaultAuthScopes(),
		CredentialsFile: credentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("get credentials for text-to-speech: %w", err)
	}

	client, err := texttospeech.NewClient(ctx, option.WithAuthCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech client: %w", err)
	}

	return &GoogleTTSClient{api: client, close: client.Close}, nil
}

func (c *GoogleTTSClient) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	resp, err := c.api.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: req.LocaleCode,
			Name:         req.VoiceName,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("google tts: %w", err)
	}

	return resp.GetAudioContent(), nil
}

func (c *GoogleTTSClient) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}
