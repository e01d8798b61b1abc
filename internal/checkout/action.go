package checkout

import (
	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
	"github.com/Spok95/art-shop-bot/internal/order"
)

// Action — команда, которую UI отправляет машине.
type Action interface {
	name() string
}

type AddItem struct {
	Entry  catalog.Entry
	Option string
}

type RemoveItem struct {
	ItemID string
}

type Proceed struct{}

type Back struct{}

type Field string

const (
	FieldName  Field = "name"
	FieldPhone Field = "phone"
	FieldNote  Field = "note"
)

// EditContact заполняет одно поле контакта на шаге Details.
type EditContact struct {
	Field Field
	Value string
}

type Submit struct {
	Channel order.Channel
}

type NewOrder struct{}

func (AddItem) name() string     { return "add_item" }
func (RemoveItem) name() string  { return "remove_item" }
func (Proceed) name() string     { return "proceed" }
func (Back) name() string        { return "back" }
func (EditContact) name() string { return "edit_contact" }
func (Submit) name() string      { return "submit" }
func (NewOrder) name() string    { return "new_order" }

// ActionName возвращает короткое имя действия для логов и метрик.
func ActionName(a Action) string { return a.name() }
