// Package locale translates the messages shown to nimp users.
package locale

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Strmap map[string]interface{}

//go:embed *.yaml
var localesFS embed.FS
var lang *i18n.Localizer

func loadLanguage(bundle *i18n.Bundle, tag language.Tag) error {
	_, err := bundle.LoadMessageFileFS(localesFS, fmt.Sprintf("%s.yaml", tag.String()))
	return err
}

func init() {
	var defaultTag = language.English

	if languageName := getLanguageName(); languageName != "" {
		tag, err := language.Parse(languageName)
		if err != nil {
			logrus.Debugf("failed to parse language name %s", languageName)
		} else {
			base, _ := tag.Base()
			defaultTag = language.Make(base.String())
		}
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	if err := loadLanguage(bundle, language.English); err != nil {
		panic("failed to load english language")
	}
	if defaultTag != language.English {
		if err := loadLanguage(bundle, defaultTag); err != nil {
			logrus.Debugf("No translation for %s, using english", defaultTag)
		}
	}

	lang = i18n.NewLocalizer(bundle, defaultTag.String(), language.English.String())
}

// Loc returns the translation of id, rendered with tmpl.
func Loc(id string, tmpl Strmap) string {
	s, err := lang.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: tmpl,
	})
	if err != nil {
		return fmt.Sprintf("failed to translate! %s", id)
	}
	return s
}
