package cart

import (
	"fmt"
	"time"

	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
)

// Store — корзина одного покупателя. Не потокобезопасна: вызывающий
// сериализует доступ (одна сессия — один поток событий).
type Store struct {
	items     []LineItem
	observers map[int]func(Event)
	nextObs   int
	now       func() time.Time
}

type Option func(*Store)

// WithClock подменяет источник времени для id позиций.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{observers: map[int]func(Event){}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subscribe регистрирует наблюдателя; возвращает функцию отписки.
func (s *Store) Subscribe(fn func(Event)) func() {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

// Add кладёт позицию в конец корзины и возвращает её.
func (s *Store) Add(entry catalog.Entry, option string) LineItem {
	item := LineItem{
		ID:     s.newID(entry.EntryID()),
		Name:   entry.EntryName(),
		Price:  entry.EntryPrice(),
		Option: option,
	}
	s.items = append(s.items, item)
	s.notify(EventAdded, item)
	return item
}

// Remove удаляет первую позицию с таким id. Неизвестный id — no-op.
func (s *Store) Remove(itemID string) {
	for i, it := range s.items {
		if it.ID != itemID {
			continue
		}
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		s.notify(EventRemoved, it)
		return
	}
}

func (s *Store) Clear() {
	s.items = nil
	s.notify(EventCleared, LineItem{})
}

func (s *Store) Total() int {
	total := 0
	for _, it := range s.items {
		total += it.Price
	}
	return total
}

func (s *Store) Count() int { return len(s.items) }

// Items возвращает копию позиций в порядке добавления.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Get(itemID string) (LineItem, bool) {
	for _, it := range s.items {
		if it.ID == itemID {
			return it, true
		}
	}
	return LineItem{}, false
}

func (s *Store) notify(kind EventKind, item LineItem) {
	ev := Event{Kind: kind, Item: item, Count: s.Count(), Total: s.Total()}
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			fn(ev)
		}
	}
}

// newID: <id товара>-<unix ms>; при совпадении в ту же миллисекунду
// добавляется суффикс -2, -3, ...
func (s *Store) newID(productID string) string {
	base := fmt.Sprintf("%s-%d", productID, s.now().UnixMilli())
	id := base
	for n := 2; ; n++ {
		if _, taken := s.Get(id); !taken {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}
