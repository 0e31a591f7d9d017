package languages

import "errors"

var ErrUnknownLanguage = errors.New("unknown language")

// Entry — one selectable target language.
// Key is the lowercase English name used in translation prompts,
// LocaleCode is the regional tag passed to the TTS voice (xx-XX / xxx-XX).
type Entry struct {
	DisplayName string `json:"display_name"`
	Key         string `json:"key"`
	LocaleCode  string `json:"locale_code"`
}

type Catalog interface {
	Resolve(displayName string) (Entry, error)
	List() []Entry
}
