package gallery

import (
	"context"
	"fmt"
	"time"

	"github.com/Spok95/art-shop-bot/internal/schedule"
)

const DefaultSlideshowInterval = 3 * time.Second

// Viewer — сетка с фильтром по категории и лайтбокс поверх неё.
// Не потокобезопасен, доступ сериализует владелец сессии.
type Viewer struct {
	all       []Photo
	category  string
	filtered  []Photo
	index     int
	open      bool
	slideshow *Slideshow
}

func NewViewer(photos []Photo) *Viewer {
	v := &Viewer{all: photos}
	v.SetCategory(AllCategories)
	return v
}

// Categories — «toate» и затем категории в порядке первого появления.
func (v *Viewer) Categories() []string {
	out := []string{AllCategories}
	seen := map[string]bool{AllCategories: true}
	for _, p := range v.all {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func (v *Viewer) Category() string { return v.category }

// SetCategory меняет фильтр и закрывает лайтбокс.
func (v *Viewer) SetCategory(category string) {
	v.Close()
	v.category = category
	v.filtered = v.filtered[:0]
	for _, p := range v.all {
		if category == AllCategories || p.Category == category {
			v.filtered = append(v.filtered, p)
		}
	}
	v.index = 0
}

func (v *Viewer) Photos() []Photo {
	out := make([]Photo, len(v.filtered))
	copy(out, v.filtered)
	return out
}

// Open открывает лайтбокс на фото с индексом i в текущем фильтре.
func (v *Viewer) Open(i int) bool {
	if i < 0 || i >= len(v.filtered) {
		return false
	}
	v.index = i
	v.open = true
	return true
}

// Close закрывает лайтбокс и останавливает слайдшоу.
func (v *Viewer) Close() {
	v.open = false
	if v.slideshow != nil {
		v.slideshow.Stop()
	}
}

func (v *Viewer) IsOpen() bool { return v.open }

func (v *Viewer) Current() (Photo, bool) {
	if !v.open || len(v.filtered) == 0 {
		return Photo{}, false
	}
	return v.filtered[v.index], true
}

func (v *Viewer) Next() {
	if n := len(v.filtered); n > 0 {
		v.index = (v.index + 1) % n
	}
}

func (v *Viewer) Prev() {
	if n := len(v.filtered); n > 0 {
		v.index = (v.index - 1 + n) % n
	}
}

// Counter — «3 / 12», для пустой категории «0 / 0».
func (v *Viewer) Counter() string {
	if len(v.filtered) == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", v.index+1, len(v.filtered))
}

// AttachSlideshow привязывает слайдшоу, чтобы Close его останавливал.
func (v *Viewer) AttachSlideshow(s *Slideshow) { v.slideshow = s }

func (v *Viewer) Slideshow() *Slideshow { return v.slideshow }

type Slideshow struct {
	rep *schedule.Repeater
}

// NewSlideshow: tick вызывается каждые interval, пока слайдшоу идёт.
func NewSlideshow(interval time.Duration, tick func(ctx context.Context)) *Slideshow {
	if interval <= 0 {
		interval = DefaultSlideshowInterval
	}
	return &Slideshow{rep: schedule.NewRepeater(interval, tick)}
}

// Toggle запускает или останавливает показ; возвращает новое состояние.
func (s *Slideshow) Toggle(ctx context.Context) bool {
	if s.rep.Running() {
		s.rep.Stop()
		return false
	}
	s.rep.Start(ctx)
	return true
}

func (s *Slideshow) Stop() { s.rep.Stop() }

func (s *Slideshow) Running() bool { return s.rep.Running() }
