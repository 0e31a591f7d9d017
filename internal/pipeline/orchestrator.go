package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/voice_translator/internal/ai"
	"github.com/Vovarama1992/voice_translator/internal/error_notificator"
	"github.com/Vovarama1992/voice_translator/internal/languages"
	"github.com/Vovarama1992/voice_translator/internal/speech"
	"github.com/Vovarama1992/voice_translator/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Orchestrator struct {
	catalog     languages.Catalog
	transcriber Transcriber
	translator  ai.Translator
	synthesizer Synthesizer
	sink        storage.Sink
	notifier    error_notificator.Notificator
	log         *zap.SugaredLogger

	// OnTransition is called on every state change, in order.
	OnTransition func(from, to State)
}

func NewOrchestrator(
	catalog languages.Catalog,
	transcriber Transcriber,
	translator ai.Translator,
	synthesizer Synthesizer,
	sink storage.Sink,
	notifier error_notificator.Notificator,
	log *zap.SugaredLogger,
) *Orchestrator {
	if sink == nil {
		sink = storage.MemorySink{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Orchestrator{
		catalog:     catalog,
		transcriber: transcriber,
		translator:  translator,
		synthesizer: synthesizer,
		sink:        sink,
		notifier:    notifier,
		log:         log,
	}
}

type run struct {
	o      *Orchestrator
	state  State
	result *Result
}

func (r *run) advance(to State) {
	from := r.state
	r.state = to
	r.result.State = to
	r.o.log.Debugw("pipeline transition", "from", from, "to", to)
	if r.o.OnTransition != nil {
		r.o.OnTransition(from, to)
	}
}

func (r *run) fail(ctx context.Context, err error) (*Result, error) {
	stage := r.state
	stageErr := &StageError{Stage: stage, Err: err}

	r.result.FailedStage = stage
	r.result.Err = stageErr
	r.advance(StateFailed)

	r.o.log.Errorw("pipeline failed", "stage", stage, "error", err)
	// неподдерживаемый формат это ошибка клиента, админа не дёргаем
	if r.o.notifier != nil && !errors.Is(err, speech.ErrUnsupportedFormat) {
		_ = r.o.notifier.Notify(ctx, string(stage), err, fmt.Sprintf("transcript=%q", r.result.Transcript))
	}

	return r.result, stageErr
}

// Run executes transcribe → translate → (synthesize) once, without retries.
// With no input or an unknown language the run never leaves Idle and no remote call is made.
// The returned History is the caller's history grown by the translation call;
// on failure before translation succeeds it is the unchanged input.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	r := &run{
		o:      o,
		state:  StateIdle,
		result: &Result{State: StateIdle, History: req.History},
	}

	input, err := SelectInput(req.Upload, req.Recording)
	if err != nil {
		r.result.Err = err
		return r.result, err
	}

	lang, err := o.catalog.Resolve(req.Language)
	if err != nil {
		r.result.Err = err
		return r.result, err
	}

	start := time.Now()

	// 1) голос -> текст
	r.advance(StateTranscribing)
	transcript, err := o.transcriber.Transcribe(ctx, input)
	if err != nil {
		return r.fail(ctx, err)
	}
	r.result.Transcript = transcript

	// 2) перевод
	r.advance(StateTranslating)
	translation, history, err := o.translator.Translate(ctx, transcript, lang.Key, req.History)
	if err != nil {
		return r.fail(ctx, err)
	}
	r.result.Translation = translation
	r.result.History = history

	// 3) текст -> голос (опционально)
	if req.Synthesize {
		r.advance(StateSynthesizing)

		voice := req.Voice
		if voice == "" {
			voice = languages.DefaultVoice(lang)
		}

		audio, err := o.synthesizer.Synthesize(ctx, translation, lang.LocaleCode, voice)
		if err != nil {
			return r.fail(ctx, err)
		}
		r.result.Audio = audio
		r.result.AudioLocation = o.persist(ctx, audio)
	}

	r.advance(StateDone)
	o.log.Infow("pipeline done",
		"language", lang.DisplayName,
		"synthesized", req.Synthesize,
		"took", time.Since(start),
	)

	return r.result, nil
}

// Transcribe runs only the first stage, for the transcription-only flow.
func (o *Orchestrator) Transcribe(ctx context.Context, upload *speech.Upload, recording []byte) (string, error) {
	input, err := SelectInput(upload, recording)
	if err != nil {
		return "", err
	}

	text, err := o.transcriber.Transcribe(ctx, input)
	if err != nil {
		return "", &StageError{Stage: StateTranscribing, Err: err}
	}
	return text, nil
}

// persist applies the sink policy; a sink error never fails the run.
func (o *Orchestrator) persist(ctx context.Context, audio *speech.Audio) string {
	loc, err := o.sink.Save(ctx, audio, uuid.NewString())
	if err != nil {
		o.log.Warnw("audio not persisted", "error", err)
		return ""
	}
	return loc
}
