package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/art-shop-bot/internal/domain/cart"
)

type Settings struct {
	Currency string
	Greeting string
	Closing  string
	Subject  string
}

// Formatter превращает снимок корзины в текст заказа. Два варианта текста
// (чат и email) перечисляют одни и те же поля в одном порядке.
type Formatter struct {
	s   Settings
	now func() time.Time
}

func NewFormatter(s Settings, now func() time.Time) *Formatter {
	if now == nil {
		now = time.Now
	}
	if s.Currency == "" {
		s.Currency = "LEI"
	}
	return &Formatter{s: s, now: now}
}

func (f *Formatter) Subject() string { return f.s.Subject }

// Build собирает заказ; id берётся из текущего времени.
func (f *Formatter) Build(items []cart.LineItem, c Contact, ch Channel) Order {
	ts := f.now()
	lines := make([]cart.LineItem, len(items))
	copy(lines, items)
	total := 0
	for _, it := range lines {
		total += it.Price
	}
	return Order{
		ID:        "ML-" + ts.Format("060102-150405"),
		CreatedAt: ts,
		Channel:   ch,
		Contact: Contact{
			Name:  strings.TrimSpace(c.Name),
			Phone: strings.TrimSpace(c.Phone),
			Note:  strings.TrimSpace(c.Note),
		},
		Lines: lines,
		Total: total,
	}
}

func (f *Formatter) Text(o Order) string {
	if o.Channel == ChannelEmail {
		return f.plain(o)
	}
	return f.chat(o)
}

func (f *Formatter) Price(amount int) string {
	return fmt.Sprintf("%d %s", amount, f.s.Currency)
}

func (f *Formatter) line(idx int, it cart.LineItem) string {
	return fmt.Sprintf("%d. %s (%s) - %s", idx+1, it.Name, it.Option, f.Price(it.Price))
}

func (f *Formatter) chat(o Order) string {
	var sb strings.Builder
	if f.s.Greeting != "" {
		sb.WriteString(f.s.Greeting + "\n\n")
	}
	fmt.Fprintf(&sb, "🧾 Comanda %s\n", o.ID)
	fmt.Fprintf(&sb, "👤 Nume: %s\n", o.Contact.Name)
	fmt.Fprintf(&sb, "📞 Telefon: %s\n\n", o.Contact.Phone)
	for i, it := range o.Lines {
		sb.WriteString("▪️ " + f.line(i, it) + "\n")
	}
	if o.Contact.Note != "" {
		fmt.Fprintf(&sb, "\n📝 Notă: %s\n", o.Contact.Note)
	}
	fmt.Fprintf(&sb, "\n💰 TOTAL: %s", f.Price(o.Total))
	if f.s.Closing != "" {
		sb.WriteString("\n\n" + f.s.Closing)
	}
	return sb.String()
}

func (f *Formatter) plain(o Order) string {
	var sb strings.Builder
	if f.s.Greeting != "" {
		sb.WriteString(f.s.Greeting + "\n\n")
	}
	fmt.Fprintf(&sb, "Comanda: %s\n", o.ID)
	fmt.Fprintf(&sb, "Nume: %s\n", o.Contact.Name)
	fmt.Fprintf(&sb, "Telefon: %s\n\n", o.Contact.Phone)
	for i, it := range o.Lines {
		sb.WriteString(f.line(i, it) + "\n")
	}
	if o.Contact.Note != "" {
		fmt.Fprintf(&sb, "\nNotă: %s\n", o.Contact.Note)
	}
	fmt.Fprintf(&sb, "\nTOTAL: %s", f.Price(o.Total))
	if f.s.Closing != "" {
		sb.WriteString("\n\n" + f.s.Closing)
	}
	return sb.String()
}
