// Package translations serves the interface strings in each card language,
// falling back to English.
package translations

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	cardlang "github.com/kpauljoseph/lingocards/internal/language"
)

//go:embed locales/messages.*.toml
var localesFS embed.FS

// Fallback is the interface language used when a card language has no
// translation for a message.
const Fallback = "en"

type Translator struct {
	bundle *i18n.Bundle
}

// New loads the embedded message files for English and every card language.
func New() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files := []string{Fallback}
	for _, code := range cardlang.Supported() {
		files = append(files, code.String())
	}

	for _, lang := range files {
		path := fmt.Sprintf("locales/messages.%s.toml", lang)
		if _, err := bundle.LoadMessageFileFS(localesFS, path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return &Translator{bundle: bundle}, nil
}

// Languages lists the loaded interface languages.
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// T translates messageID for lang. Unknown IDs come back unchanged.
func (t *Translator) T(lang cardlang.Code, messageID string, data map[string]any) string {
	return t.localize(lang, &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
}

// N translates a message that has plural forms, selected by count. Count is
// added to data.
func (t *Translator) N(lang cardlang.Code, messageID string, count int, data map[string]any) string {
	merged := map[string]any{"Count": count}
	for k, v := range data {
		merged[k] = v
	}
	return t.localize(lang, &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: merged,
		PluralCount:  count,
	})
}

func (t *Translator) localize(lang cardlang.Code, cfg *i18n.LocalizeConfig) string {
	localizer := i18n.NewLocalizer(t.bundle, lang.String(), Fallback)
	text, err := localizer.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return text
}
