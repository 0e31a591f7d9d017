package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/voice_translator/internal/ai"
	"github.com/Vovarama1992/voice_translator/internal/speech"
)

var ErrNoInput = errors.New("no audio input")

type State string

const (
	StateIdle         State = "idle"
	StateTranscribing State = "transcribing"
	StateTranslating  State = "translating"
	StateSynthesizing State = "synthesizing"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

type Transcriber interface {
	Transcribe(ctx context.Context, input speech.AudioInput) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, localeCode, voiceName string) (*speech.Audio, error)
}

// Request — один запуск. Upload важнее Recording, если пришли оба.
type Request struct {
	Upload     *speech.Upload
	Recording  []byte
	Language   string
	Synthesize bool
	// Voice overrides the catalog default voice for the locale.
	Voice   string
	History ai.History
}

// Result keeps every output computed before a failure.
type Result struct {
	State         State
	FailedStage   State
	Transcript    string
	Translation   string
	Audio         *speech.Audio
	AudioLocation string
	History       ai.History
	Err           error
}

// StageError names the stage that failed and unwraps to the adapter error.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// SelectInput resolves the two optional sources to one AudioInput.
func SelectInput(upload *speech.Upload, recording []byte) (speech.AudioInput, error) {
	switch {
	case upload != nil:
		return *upload, nil
	case len(recording) > 0:
		return speech.Recording{Data: recording}, nil
	}
	return nil, ErrNoInput
}
