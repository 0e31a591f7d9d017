package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hTranslate *TranslateHandler,
	hLang *LanguageHandler,
	ratePerMin int,
) {
	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- языки ---
		pr.Get("/languages", hLang.List)

		// --- сессия ---
		pr.Delete("/session", hTranslate.ResetSession)

		// --- пайплайн: внешние API платные, режем частоту ---
		pr.Group(func(lr chi.Router) {
			if ratePerMin > 0 {
				lr.Use(httprate.LimitByIP(ratePerMin, time.Minute))
			}
			lr.Post("/translate", hTranslate.Translate)
			lr.Post("/transcribe", hTranslate.Transcribe)
		})
	})
}
