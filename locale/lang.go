package locale

import "github.com/cloudfoundry-attic/jibber_jabber"

func getLanguageName() string {
	languageName, _ := jibber_jabber.DetectLanguage()
	return languageName
}
