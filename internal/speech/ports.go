package speech

import (
	"context"
	"errors"
	"io"
)

var (
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrSynthesisFailed     = errors.New("synthesis failed")
	ErrUnsupportedFormat   = errors.New("unsupported audio format")
)

// === Интерфейсы клиентов ===

// STTClient — удалённое распознавание. name нужен API для определения формата по расширению.
type STTClient interface {
	Transcribe(ctx context.Context, name string, r io.Reader) (string, error)
}

type TTSClient interface {
	Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error)
}

type SynthesisRequest struct {
	Text       string
	LocaleCode string
	VoiceName  string
}

// Audio — синтезированная речь, всегда MP3.
type Audio struct {
	Data        []byte
	Format      string
	ContentType string
	LocaleCode  string
	VoiceName   string
}

// === AudioInput ===

// AudioInput is one user-submitted clip: either Upload or Recording.
type AudioInput interface {
	audioInput()
}

// Upload — файл из браузера, уже file-like.
type Upload struct {
	Name   string
	Reader io.Reader
}

// Recording — сырые WAV байты из рекордера.
type Recording struct {
	Data []byte
}

func (Upload) audioInput()    {}
func (Recording) audioInput() {}
