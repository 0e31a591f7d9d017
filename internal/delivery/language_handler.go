package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/voice_translator/internal/languages"
)

type LanguageHandler struct {
	catalog languages.Catalog
}

func NewLanguageHandler(catalog languages.Catalog) *LanguageHandler {
	return &LanguageHandler{catalog: catalog}
}

// GET /languages
func (h *LanguageHandler) List(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.catalog.List())
}
