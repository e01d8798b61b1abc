package cart

type LineItem struct {
	ID     string
	Name   string
	Price  int
	Option string
}

type EventKind string

const (
	EventAdded   EventKind = "added"
	EventRemoved EventKind = "removed"
	EventCleared EventKind = "cleared"
)

// Event отправляется наблюдателям после каждого изменения корзины.
type Event struct {
	Kind  EventKind
	Item  LineItem // пусто для EventCleared
	Count int
	Total int
}
