package delivery

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_translator/internal/languages"
	"github.com/Vovarama1992/voice_translator/internal/pipeline"
	"github.com/Vovarama1992/voice_translator/internal/speech"
)

// лимит Whisper на размер файла
const maxUploadSize = 25 << 20

type Pipeline interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	Transcribe(ctx context.Context, upload *speech.Upload, recording []byte) (string, error)
}

type TranslateHandler struct {
	pipeline Pipeline
	sessions SessionStore
	log      *logger.ZapLogger
}

func NewTranslateHandler(p Pipeline, sessions SessionStore, log *logger.ZapLogger) *TranslateHandler {
	return &TranslateHandler{
		pipeline: p,
		sessions: sessions,
		log:      log,
	}
}

type translateResponse struct {
	SessionID        string `json:"session_id"`
	State            string `json:"state"`
	Transcript       string `json:"transcript,omitempty"`
	Translation      string `json:"translation,omitempty"`
	AudioBase64      string `json:"audio_base64,omitempty"`
	AudioContentType string `json:"audio_content_type,omitempty"`
	AudioLocation    string `json:"audio_location,omitempty"`
	FailedStage      string `json:"failed_stage,omitempty"`
	Error            string `json:"error,omitempty"`
}

// audioForm holds the two optional audio parts of a multipart request.
type audioForm struct {
	upload    *speech.Upload
	recording []byte
	closers   []io.Closer
}

func (f *audioForm) Close() {
	for _, c := range f.closers {
		_ = c.Close()
	}
}

func readAudioForm(w http.ResponseWriter, r *http.Request) (*audioForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, fmt.Errorf("invalid multipart: %w", err)
	}

	form := &audioForm{}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		form.closers = append(form.closers, file)
		form.upload = &speech.Upload{Name: header.Filename, Reader: file}
	case !errors.Is(err, http.ErrMissingFile):
		return nil, fmt.Errorf("invalid file part: %w", err)
	}

	rec, _, err := r.FormFile("recording")
	switch {
	case err == nil:
		defer rec.Close()
		data, err := io.ReadAll(rec)
		if err != nil {
			form.Close()
			return nil, fmt.Errorf("read recording: %w", err)
		}
		form.recording = data
	case !errors.Is(err, http.ErrMissingFile):
		form.Close()
		return nil, fmt.Errorf("invalid recording part: %w", err)
	}

	return form, nil
}

// POST /translate
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	form, err := readAudioForm(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer form.Close()

	synthesize := false
	if v := r.FormValue("synthesize"); v != "" {
		synthesize, err = strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid synthesize flag", http.StatusBadRequest)
			return
		}
	}

	sid := sessionID(w, r, h.sessions)

	// одна сессия: запросы по очереди, иначе теряется история
	unlock := h.sessions.Lock(sid)
	defer unlock()

	res, err := h.pipeline.Run(r.Context(), pipeline.Request{
		Upload:     form.upload,
		Recording:  form.recording,
		Language:   r.FormValue("language"),
		Synthesize: synthesize,
		Voice:      r.FormValue("voice"),
		History:    h.sessions.Get(sid),
	})

	resp := translateResponse{SessionID: sid}
	if res != nil {
		if err == nil {
			h.sessions.Put(sid, res.History)
		}

		resp.State = string(res.State)
		resp.Transcript = res.Transcript
		resp.Translation = res.Translation
		resp.FailedStage = string(res.FailedStage)
		resp.AudioLocation = res.AudioLocation
		if res.Audio != nil {
			resp.AudioBase64 = base64.StdEncoding.EncodeToString(res.Audio.Data)
			resp.AudioContentType = res.Audio.ContentType
		}
	}

	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = statusFor(err)
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "pipeline run failed (stage " + resp.FailedStage + ")",
			Service: "voice_translator",
			Error:   err,
		})
	}

	writeJSON(w, status, resp)
}

// POST /transcribe
func (h *TranslateHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	form, err := readAudioForm(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer form.Close()

	text, err := h.pipeline.Transcribe(r.Context(), form.upload, form.recording)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "transcribe failed", Service: "voice_translator", Error: err})
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transcript": text})
}

// DELETE /session
func (h *TranslateHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	if id := existingSessionID(r); id != "" {
		h.sessions.Reset(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	var stageErr *pipeline.StageError
	switch {
	case errors.Is(err, pipeline.ErrNoInput), errors.Is(err, languages.ErrUnknownLanguage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, speech.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &stageErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
