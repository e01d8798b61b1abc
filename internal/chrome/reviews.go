package chrome

import (
	"math/rand"
	"time"
)

type Review struct {
	Text   string
	Author string
}

var DefaultReviews = []Review{
	{Text: "Cea mai tare caricatura primita vreodata! Liniile sunt superbe.", Author: "ALEX M."},
	{Text: "Live drawing la nunta a fost hit-ul serii! Toti invitatii au plecat cu amintiri.", Author: "MARIA G."},
	{Text: "Detaliile din portret sunt incredibile. Exact ce cautam.", Author: "DAN S."},
	{Text: "Stil unic, urban, diferit de tot ce am vazut pana acum.", Author: "ELENA P."},
	{Text: "Serviciu rapid si comunicare excelenta. Recomand!", Author: "COSMIN T."},
	{Text: "Am comandat un Multistarz rare card si arata fenomenal!", Author: "IONUȚ R."},
}

var toastColors = []string{"#859F3D", "#FFD700", "#ffffff"}

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

const (
	DefaultToastDisplay  = 4 * time.Second
	ToastFadeOut         = time.Second
	DefaultScrollTrigger = 600
)

// Toast — всплывающий отзыв с его оформлением.
type Toast struct {
	Review   Review
	Side     Side
	Color    string
	Rotation float64 // градусы, -10..10
	Top      float64 // 200..500
	Seq      int
}

// Rotator выдаёт отзывы по кругу: сторона чередуется, цвет идёт по кругу из трёх.
type Rotator struct {
	reviews []Review
	rnd     *rand.Rand
	count   int
}

func NewRotator(reviews []Review, rnd *rand.Rand) *Rotator {
	if len(reviews) == 0 {
		reviews = DefaultReviews
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Rotator{reviews: reviews, rnd: rnd}
}

func (r *Rotator) Next() Toast {
	n := r.count
	r.count++
	side := SideLeft
	if n%2 == 1 {
		side = SideRight
	}
	return Toast{
		Review:   r.reviews[n%len(r.reviews)],
		Side:     side,
		Color:    toastColors[n%len(toastColors)],
		Rotation: r.rnd.Float64()*20 - 10,
		Top:      200 + r.rnd.Float64()*300,
		Seq:      n,
	}
}

// ScrollTrigger срабатывает, когда позиция ушла от последней точки
// срабатывания дальше, чем на Distance.
type ScrollTrigger struct {
	Distance float64
	last     float64
}

func NewScrollTrigger(distance float64) *ScrollTrigger {
	if distance <= 0 {
		distance = DefaultScrollTrigger
	}
	return &ScrollTrigger{Distance: distance}
}

func (s *ScrollTrigger) Observe(pos float64) bool {
	diff := pos - s.last
	if diff < 0 {
		diff = -diff
	}
	if diff > s.Distance {
		s.last = pos
		return true
	}
	return false
}
