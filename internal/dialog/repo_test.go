package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Spok95/art-shop-bot/internal/checkout"
)

func TestRepoCreatesOnce(t *testing.T) {
	t.Parallel()

	created := 0
	r := NewRepo(func(chatID int64) *Session {
		created++
		return &Session{}
	})
	var sizes []int
	r.OnSize(func(n int) { sizes = append(sizes, n) })

	a := r.Get(1)
	require.Same(t, a, r.Get(1))
	require.EqualValues(t, 1, a.ChatID)
	require.Equal(t, StateIdle, a.Input)
	require.Equal(t, 1, created)

	r.Get(2)
	require.Equal(t, 2, r.Len())

	require.Same(t, a, r.Reset(1))
	require.Nil(t, r.Reset(1))
	require.Equal(t, 1, r.Len())
	require.NotSame(t, a, r.Get(1))
	require.Equal(t, []int{1, 2, 1, 2}, sizes)
}

func TestRepoIdle(t *testing.T) {
	t.Parallel()

	r := NewRepo(func(chatID int64) *Session { return &Session{} })
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	r.Get(1)
	clock = clock.Add(time.Hour)
	r.Get(2)

	require.Equal(t, []int64{1}, r.Idle(clock.Add(-time.Minute)))
	require.Empty(t, r.Idle(clock.Add(-2*time.Hour)))

	// обращение освежает чат
	r.Get(1)
	require.Empty(t, r.Idle(clock.Add(-time.Minute)))

	r.Reset(1)
	require.ElementsMatch(t, []int64{2}, r.Idle(clock.Add(time.Minute)))
}

func TestFieldStateMapping(t *testing.T) {
	t.Parallel()

	for _, f := range []checkout.Field{checkout.FieldName, checkout.FieldPhone, checkout.FieldNote} {
		got, ok := FieldFor(StateFor(f))
		require.True(t, ok)
		require.Equal(t, f, got)
	}
	_, ok := FieldFor(StateIdle)
	require.False(t, ok)
	require.Equal(t, StateIdle, StateFor("email"))
}

func TestSessionInvalid(t *testing.T) {
	t.Parallel()

	s := &Session{Invalid: []checkout.Field{checkout.FieldPhone}}
	require.True(t, s.IsInvalid(checkout.FieldPhone))
	require.False(t, s.IsInvalid(checkout.FieldName))
}
