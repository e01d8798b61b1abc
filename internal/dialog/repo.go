package dialog

import (
	"sync"
	"time"
)

// Factory создаёт новую сессию для чата.
type Factory func(chatID int64) *Session

// Repo держит сессии в памяти. Персистентности нет: после рестарта
// корзины пустые. Давно не активные сессии забирает Idle + Reset.
type Repo struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	seen     map[int64]time.Time
	factory  Factory
	onSize   func(n int)
	now      func() time.Time
}

func NewRepo(factory Factory) *Repo {
	return &Repo{
		sessions: map[int64]*Session{},
		seen:     map[int64]time.Time{},
		factory:  factory,
		now:      time.Now,
	}
}

// OnSize вызывается с новым числом сессий после каждого изменения.
func (r *Repo) OnSize(fn func(n int)) { r.onSize = fn }

// Get возвращает сессию чата, создавая её при первом обращении,
// и отмечает чат активным.
func (r *Repo) Get(chatID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[chatID] = r.now()
	if s, ok := r.sessions[chatID]; ok {
		return s
	}
	s := r.factory(chatID)
	s.ChatID = chatID
	if s.Input == "" {
		s.Input = StateIdle
	}
	r.sessions[chatID] = s
	r.sizeChanged()
	return s
}

// Idle — чаты, к которым не обращались с момента before.
func (r *Repo) Idle(before time.Time) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for id, t := range r.seen {
		if t.Before(before) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Reset удаляет сессию и возвращает её (nil, если сессии не было);
// следующий Get создаст новую.
func (r *Repo) Reset(chatID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[chatID]
	if !ok {
		return nil
	}
	delete(r.sessions, chatID)
	delete(r.seen, chatID)
	r.sizeChanged()
	return s
}

func (r *Repo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Repo) sizeChanged() {
	if r.onSize != nil {
		r.onSize(len(r.sessions))
	}
}
