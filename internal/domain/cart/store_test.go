package cart

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
)

var (
	caricatura = catalog.CustomService{ID: "caricatura", Name: "Caricatură", BasePrice: 150, Options: []string{"Digital", "Fizic A4"}}
	portret    = catalog.CustomService{ID: "portret", Name: "Portret", BasePrice: 300, Options: []string{"Fizic A4"}}
	card       = catalog.ReadyProduct{ID: "card-1", Name: "Multistarz", Price: 45}
)

func fixedClock() func() time.Time {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestAddTotalCount(t *testing.T) {
	t.Parallel()

	s := NewStore()
	require.Zero(t, s.Total())
	require.Zero(t, s.Count())

	a := s.Add(caricatura, "Digital")
	b := s.Add(portret, "Fizic A4")

	require.Equal(t, 450, s.Total())
	require.Equal(t, 2, s.Count())
	require.Equal(t, []LineItem{a, b}, s.Items())
	require.Equal(t, "Caricatură", a.Name)
	require.Equal(t, 150, a.Price)
	require.Equal(t, "Digital", a.Option)
}

func TestItemIDsUniqueWithinSameMillisecond(t *testing.T) {
	t.Parallel()

	s := NewStore(WithClock(fixedClock()))
	first := s.Add(card, "Gata Făcut")
	second := s.Add(card, "Gata Făcut")
	third := s.Add(card, "Gata Făcut")

	ms := fixedClock()().UnixMilli()
	require.Equal(t, "card-1-"+strconv.FormatInt(ms, 10), first.ID)
	require.Equal(t, first.ID+"-2", second.ID)
	require.Equal(t, first.ID+"-3", third.ID)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	s := NewStore(WithClock(fixedClock()))
	a := s.Add(caricatura, "Digital")
	b := s.Add(portret, "Fizic A4")
	c := s.Add(card, "Gata Făcut")

	s.Remove(b.ID)
	require.Equal(t, []LineItem{a, c}, s.Items())
	require.Equal(t, 195, s.Total())

	before := s.Items()
	s.Remove("does-not-exist")
	require.Equal(t, before, s.Items())
	require.Equal(t, 2, s.Count())
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(caricatura, "Digital")
	s.Clear()
	require.Zero(t, s.Count())
	require.Zero(t, s.Total())
	require.Empty(t, s.Items())
}

func TestItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(caricatura, "Digital")
	items := s.Items()
	items[0].Price = 1
	require.Equal(t, 150, s.Total())
}

func TestObserversNotifiedSynchronously(t *testing.T) {
	t.Parallel()

	s := NewStore()
	var events []Event
	unsubscribe := s.Subscribe(func(e Event) { events = append(events, e) })

	a := s.Add(caricatura, "Digital")
	require.Len(t, events, 1, "notification must happen before Add returns")
	require.Equal(t, Event{Kind: EventAdded, Item: a, Count: 1, Total: 150}, events[0])

	s.Remove("missing")
	require.Len(t, events, 1, "no-op remove does not notify")

	s.Remove(a.ID)
	require.Equal(t, Event{Kind: EventRemoved, Item: a, Count: 0, Total: 0}, events[1])

	s.Clear()
	require.Equal(t, EventCleared, events[2].Kind)

	unsubscribe()
	s.Add(portret, "Fizic A4")
	require.Len(t, events, 3)
}

// Для любой последовательности add/remove итог равен сумме оставшихся цен.
func TestTotalMatchesRemainingItems(t *testing.T) {
	t.Parallel()

	entries := []catalog.Entry{caricatura, portret, card}
	rnd := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		s := NewStore()
		var model []LineItem
		for step := 0; step < 40; step++ {
			if len(model) > 0 && rnd.Intn(3) == 0 {
				idx := rnd.Intn(len(model))
				s.Remove(model[idx].ID)
				model = append(model[:idx], model[idx+1:]...)
				continue
			}
			e := entries[rnd.Intn(len(entries))]
			model = append(model, s.Add(e, "opt"))
		}

		want := 0
		for _, it := range model {
			want += it.Price
		}
		require.Equal(t, want, s.Total())
		require.Equal(t, len(model), s.Count())
		require.Equal(t, ids(model), ids(s.Items()))
	}
}

func ids(items []LineItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
