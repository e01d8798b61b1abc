package chrome

import "strings"

type Section struct {
	ID       string
	Label    string
	Shortcut string // клавиша-ярлык на сайте
	Command  string // команда бота
}

var Sections = []Section{
	{ID: "home", Label: "🏠 Acasă", Shortcut: "h", Command: "start"},
	{ID: "shop", Label: "🛒 Shop", Shortcut: "s", Command: "shop"},
	{ID: "galerie", Label: "🖼 Galerie", Shortcut: "g", Command: "gallery"},
	{ID: "contact", Label: "✉️ Contact", Shortcut: "c", Command: "contact"},
}

// Resolve сопоставляет ввод пользователя с разделом: ярлык (S, g),
// подпись кнопки, команда (/shop) или id раздела.
func Resolve(input string) (Section, bool) {
	in := strings.TrimSpace(input)
	if in == "" {
		return Section{}, false
	}
	lower := strings.ToLower(strings.TrimPrefix(in, "/"))
	for _, s := range Sections {
		if in == s.Label || lower == s.Shortcut || lower == s.Command || lower == s.ID {
			return s, true
		}
	}
	return Section{}, false
}
