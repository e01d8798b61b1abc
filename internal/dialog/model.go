package dialog

import (
	"sync"

	"github.com/Spok95/art-shop-bot/internal/checkout"
	"github.com/Spok95/art-shop-bot/internal/chrome"
	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
	"github.com/Spok95/art-shop-bot/internal/gallery"
)

// State — какой текстовый ввод бот ждёт от пользователя.
type State string

const (
	StateIdle       State = "idle"
	StateAwaitName  State = "await_name"
	StateAwaitPhone State = "await_phone"
	StateAwaitNote  State = "await_note"
)

// FieldFor — какое поле контакта заполняет ввод в данном состоянии.
func FieldFor(s State) (checkout.Field, bool) {
	switch s {
	case StateAwaitName:
		return checkout.FieldName, true
	case StateAwaitPhone:
		return checkout.FieldPhone, true
	case StateAwaitNote:
		return checkout.FieldNote, true
	}
	return "", false
}

// StateFor — обратное FieldFor.
func StateFor(f checkout.Field) State {
	switch f {
	case checkout.FieldName:
		return StateAwaitName
	case checkout.FieldPhone:
		return StateAwaitPhone
	case checkout.FieldNote:
		return StateAwaitNote
	}
	return StateIdle
}

// Session — всё состояние одного чата. Обработчики и таймеры работают с
// сессией только под Lock.
type Session struct {
	mu sync.Mutex

	ChatID  int64
	Machine *checkout.Machine
	Viewer  *gallery.Viewer
	Input   State
	ShopTab catalog.Kind

	// Поля, не прошедшие проверку при последней отправке.
	Invalid []checkout.Field

	PanelMsgID   int    // сообщение с корзиной/шагом оформления
	PanelText    string // последний отрисованный текст панели
	GalleryMsgID int    // сообщение лайтбокса

	Scroll   *chrome.ScrollTrigger
	Scrolled float64
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// IsInvalid — подсвечивать ли поле.
func (s *Session) IsInvalid(f checkout.Field) bool {
	for _, x := range s.Invalid {
		if x == f {
			return true
		}
	}
	return false
}
