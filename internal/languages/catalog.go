package languages

import (
	"fmt"
	"log"
)

// defaultTable — порядок важен, так же показываем в UI.
// Swedish идёт первым и повторяется ниже: дубликаты отбрасываются при сборке каталога.
var defaultTable = []Entry{
	{"Swedish", "swedish", "sv-SE"},
	{"Arabic", "arabic", "ar-XA"},
	{"Chinese", "chinese", "zh-CN"},
	{"Czech", "czech", "cs-CZ"},
	{"Danish", "danish", "da-DK"},
	{"Dutch", "dutch", "nl-NL"},
	{"English", "english", "en-US"},
	{"English (UK)", "english", "en-GB"},
	{"Finnish", "finnish", "fi-FI"},
	{"French", "french", "fr-FR"},
	{"German", "german", "de-DE"},
	{"Greek", "greek", "el-GR"},
	{"Hebrew", "hebrew", "he-IL"},
	{"Hindi", "hindi", "hi-IN"},
	{"Hungarian", "hungarian", "hu-HU"},
	{"Indonesian", "indonesian", "id-ID"},
	{"Italian", "italian", "it-IT"},
	{"Japanese", "japanese", "ja-JP"},
	{"Korean", "korean", "ko-KR"},
	{"Kurdish", "kurdish", "ku-TR"},
	{"Norwegian", "norwegian", "no-NO"},
	{"Polish", "polish", "pl-PL"},
	{"Portuguese", "portuguese", "pt-PT"},
	{"Romanian", "romanian", "ro-RO"},
	{"Russian", "russian", "ru-RU"},
	{"Spanish", "spanish", "es-ES"},
	{"Swedish", "swedish", "sv-SE"},
	{"Thai", "thai", "th-TH"},
	{"Turkish", "turkish", "tr-TR"},
	{"Ukrainian", "ukrainian", "uk-UA"},
	{"Vietnamese", "vietnamese", "vi-VN"},
}

type catalog struct {
	entries []Entry
	byName  map[string]Entry
}

func NewDefaultCatalog() Catalog {
	return NewCatalog(defaultTable)
}

// NewCatalog builds an immutable catalog. The first entry for a display name wins.
func NewCatalog(table []Entry) Catalog {
	c := &catalog{
		entries: make([]Entry, 0, len(table)),
		byName:  make(map[string]Entry, len(table)),
	}

	for _, e := range table {
		if prev, ok := c.byName[e.DisplayName]; ok {
			if prev != e {
				log.Printf("[languages] conflicting duplicate %q: keep %s, drop %s", e.DisplayName, prev.LocaleCode, e.LocaleCode)
			}
			continue
		}
		c.byName[e.DisplayName] = e
		c.entries = append(c.entries, e)
	}

	return c
}

func (c *catalog) Resolve(displayName string) (Entry, error) {
	e, ok := c.byName[displayName]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, displayName)
	}
	return e, nil
}

func (c *catalog) List() []Entry {
	return append([]Entry(nil), c.entries...)
}

// DefaultVoice — стандартный голос Google TTS для локали.
func DefaultVoice(e Entry) string {
	return e.LocaleCode + "-Standard-A"
}
