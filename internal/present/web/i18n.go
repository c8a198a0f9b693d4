package web

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/totegamma/tptech"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Translator resolves the fixed interface labels that are not part of the
// authored content documents.
type Translator struct {
	bundle     *i18n.Bundle
	localizers map[tptech.Locale]*i18n.Localizer
}

func NewTranslator() (*Translator, error) {
	bundle := i18n.NewBundle(tptech.DefaultLocale.Tag())
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	t := &Translator{
		bundle:     bundle,
		localizers: make(map[tptech.Locale]*i18n.Localizer, len(tptech.Locales)),
	}
	for _, l := range tptech.Locales {
		_, err := bundle.LoadMessageFileFS(localeFS, fmt.Sprintf("locales/messages.%s.toml", l))
		if err != nil {
			return nil, fmt.Errorf("load %s messages: %w", l, err)
		}
		t.localizers[l] = i18n.NewLocalizer(bundle, l.Tag().String())
	}
	return t, nil
}

// T returns the label for id in locale, or id itself when no message exists.
func (t *Translator) T(locale tptech.Locale, id string) string {
	localizer, ok := t.localizers[locale]
	if !ok {
		localizer = t.localizers[tptech.DefaultLocale]
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		slog.Debug("missing translation", slog.String("id", id), slog.String("locale", string(locale)))
		return id
	}
	return msg
}
