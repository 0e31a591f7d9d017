package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const (
	defaultSTTTimeout = 60 * time.Second
	defaultTTSTimeout = 60 * time.Second
)

// форматы, которые принимает Whisper
var uploadFormats = map[string]bool{
	".mp3": true, ".mp4": true, ".mpeg": true, ".mpga": true,
	".m4a": true, ".wav": true, ".webm": true,
}

// TempHooks observe the lifecycle of the temporary file created for recordings.
type TempHooks struct {
	Created func(path string)
	Removed func(path string)
}

type Options struct {
	STTTimeout time.Duration
	TTSTimeout time.Duration
	TempDir    string
	Hooks      TempHooks
}

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt  STTClient
	tts  TTSClient
	log  *zap.SugaredLogger
	opts Options
}

func NewService(stt STTClient, tts TTSClient, log *zap.SugaredLogger, opts Options) *Service {
	if opts.STTTimeout <= 0 {
		opts.STTTimeout = defaultSTTTimeout
	}
	if opts.TTSTimeout <= 0 {
		opts.TTSTimeout = defaultTTSTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Service{
		stt:  stt,
		tts:  tts,
		log:  log,
		opts: opts,
	}
}

// Transcribe makes exactly one call to the STT client. Recordings are first
// written to a named temp file which is removed on every exit path.
func (s *Service) Transcribe(ctx context.Context, input AudioInput) (string, error) {
	switch in := input.(type) {
	case Recording:
		return s.transcribeRecording(ctx, in.Data)

	case Upload:
		ext := strings.ToLower(filepath.Ext(in.Name))
		if !uploadFormats[ext] {
			return "", fmt.Errorf("%w: %w: %q", ErrTranscriptionFailed, ErrUnsupportedFormat, in.Name)
		}
		if in.Reader == nil {
			return "", fmt.Errorf("%w: upload %q has no content", ErrTranscriptionFailed, in.Name)
		}
		return s.transcribe(ctx, in.Name, in.Reader)
	}

	return "", fmt.Errorf("%w: no audio input", ErrTranscriptionFailed)
}

func (s *Service) transcribeRecording(ctx context.Context, data []byte) (string, error) {
	f, err := os.CreateTemp(s.opts.TempDir, "recording-*.wav")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %w", ErrTranscriptionFailed, err)
	}
	path := f.Name()
	if s.opts.Hooks.Created != nil {
		s.opts.Hooks.Created(path)
	}

	defer func() {
		_ = f.Close()
		if err := os.Remove(path); err != nil {
			s.log.Warnw("temp recording not removed", "path", path, "error", err)
		}
		if s.opts.Hooks.Removed != nil {
			s.opts.Hooks.Removed(path)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("%w: write temp file: %w", ErrTranscriptionFailed, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: rewind temp file: %w", ErrTranscriptionFailed, err)
	}

	s.log.Debugw("recording saved", "path", path, "size", humanize.Bytes(uint64(len(data))))

	return s.transcribe(ctx, filepath.Base(path), f)
}

func (s *Service) transcribe(ctx context.Context, name string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.STTTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.stt.Transcribe(ctx, name, r)
	if err != nil {
		s.log.Errorw("transcribe failed", "file", name, "took", time.Since(start), "error", err)
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrTranscriptionFailed)
	}

	s.log.Infow("transcribed", "file", name, "chars", len([]rune(text)), "took", time.Since(start))
	return text, nil
}

// Synthesize returns MP3 bytes; it never writes to disk.
func (s *Service) Synthesize(ctx context.Context, text, localeCode, voiceName string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrSynthesisFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.TTSTimeout)
	defer cancel()

	start := time.Now()
	data, err := s.tts.Synthesize(ctx, SynthesisRequest{
		Text:       text,
		LocaleCode: localeCode,
		VoiceName:  voiceName,
	})
	if err != nil {
		s.log.Errorw("synthesize failed", "locale", localeCode, "voice", voiceName, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty audio payload", ErrSynthesisFailed)
	}

	s.log.Infow("synthesized",
		"locale", localeCode,
		"voice", voiceName,
		"size", humanize.Bytes(uint64(len(data))),
		"took", time.Since(start),
	)

	return &Audio{
		Data:        data,
		Format:      "mp3",
		ContentType: "audio/mpeg",
		LocaleCode:  localeCode,
		VoiceName:   voiceName,
	}, nil
}
