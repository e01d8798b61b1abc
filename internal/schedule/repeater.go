// Package schedule — повторяющиеся задачи с явным Start/Stop
// (слайдшоу галереи, показ отзывов).
package schedule

import (
	"context"
	"sync"
	"time"
)

// Repeater вызывает fn каждые interval, пока не остановлен.
//
// fn получает контекст задачи. Stop не ждёт уже начатый вызов, поэтому fn,
// которая берёт общий с вызывающим Stop мьютекс, должна после захвата
// проверить ctx.Err(): отменённый контекст означает, что задача остановлена.
type Repeater struct {
	interval time.Duration
	fn       func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewRepeater(interval time.Duration, fn func(ctx context.Context)) *Repeater {
	return &Repeater{interval: interval, fn: fn}
}

// Start запускает задачу; повторный Start у работающей задачи ничего не делает.
// Задача также останавливается при отмене родительского ctx.
func (r *Repeater) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	go func() {
		t := time.NewTicker(r.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if ctx.Err() != nil {
					return
				}
				r.fn(ctx)
			}
		}
	}()
}

// Stop отменяет задачу. Безопасно вызывать повторно.
func (r *Repeater) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.cancel = nil
}

func (r *Repeater) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}
