// Package checkout — машина состояний оформления заказа:
// Items → Details → Confirm.
package checkout

import (
	"fmt"
	"strings"

	"github.com/Spok95/art-shop-bot/internal/domain/cart"
	"github.com/Spok95/art-shop-bot/internal/order"
)

// Handoff — внешние каналы отправки заказа (WhatsApp, почта).
// Отправка «выстрелил и забыл»: подтверждения доставки нет.
type Handoff interface {
	SendChat(text string)
	SendEmail(subject, body string)
}

// Snapshot — то, что нужно UI для перерисовки текущего шага.
type Snapshot struct {
	Step    Step
	Items   []cart.LineItem
	Total   int
	Contact order.Contact
	Order   *order.Order // последний отправленный заказ, только на шаге Confirm
}

type Machine struct {
	cart      *cart.Store
	format    *order.Formatter
	handoff   Handoff
	step      Step
	contact   order.Contact
	placed    *order.Order
	observers map[int]func(Snapshot)
	nextObs   int
}

func New(store *cart.Store, f *order.Formatter, h Handoff) *Machine {
	m := &Machine{
		cart:      store,
		format:    f,
		handoff:   h,
		step:      StepItems,
		observers: map[int]func(Snapshot){},
	}
	store.Subscribe(m.onCartChange)
	return m
}

func (m *Machine) Cart() *cart.Store { return m.cart }

func (m *Machine) Step() Step { return m.step }

// CanProceed — доступна ли кнопка перехода к деталям.
func (m *Machine) CanProceed() bool {
	return m.step == StepItems && m.cart.Count() > 0
}

func (m *Machine) Subscribe(fn func(Snapshot)) func() {
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	return func() { delete(m.observers, id) }
}

func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Step:    m.step,
		Items:   m.cart.Items(),
		Total:   m.cart.Total(),
		Contact: m.contact,
	}
	if m.step == StepConfirm {
		s.Order = m.placed
	}
	return s
}

// Dispatch применяет действие. При ошибке состояние не меняется и
// наблюдатели не вызываются; при успехе все наблюдатели получают новый
// снимок до возврата из Dispatch.
func (m *Machine) Dispatch(a Action) (Snapshot, error) {
	if err := m.apply(a); err != nil {
		return m.Snapshot(), err
	}
	snap := m.Snapshot()
	for i := 0; i < m.nextObs; i++ {
		if fn, ok := m.observers[i]; ok {
			fn(snap)
		}
	}
	return snap, nil
}

func (m *Machine) apply(a Action) error {
	switch act := a.(type) {
	case AddItem:
		m.cart.Add(act.Entry, act.Option)
		return nil

	case RemoveItem:
		m.cart.Remove(act.ItemID)
		return nil

	case Proceed:
		if m.step != StepItems {
			return ErrNotAllowed
		}
		if m.cart.Count() == 0 {
			return ErrEmptyCart
		}
		m.step = StepDetails
		return nil

	case Back:
		if m.step != StepDetails {
			return ErrNotAllowed
		}
		m.step = StepItems
		return nil

	case EditContact:
		if m.step != StepDetails {
			return ErrNotAllowed
		}
		switch act.Field {
		case FieldName:
			m.contact.Name = act.Value
		case FieldPhone:
			m.contact.Phone = act.Value
		case FieldNote:
			m.contact.Note = act.Value
		default:
			return fmt.Errorf("unknown field %q: %w", act.Field, ErrNotAllowed)
		}
		return nil

	case Submit:
		return m.submit(act.Channel)

	case NewOrder:
		if m.step != StepConfirm {
			return ErrNotAllowed
		}
		// новый заказ всегда начинается с пустой корзины
		m.cart.Clear()
		m.contact = order.Contact{}
		m.placed = nil
		m.step = StepItems
		return nil

	default:
		return fmt.Errorf("unknown action %T: %w", a, ErrNotAllowed)
	}
}

func (m *Machine) submit(ch order.Channel) error {
	if m.step != StepDetails {
		return ErrNotAllowed
	}
	if !ch.Valid() {
		return fmt.Errorf("unknown channel %q: %w", ch, ErrNotAllowed)
	}
	if err := Validate(m.contact); err != nil {
		return err
	}

	o := m.format.Build(m.cart.Items(), m.contact, ch)
	text := m.format.Text(o)
	switch ch {
	case order.ChannelWhatsApp:
		m.handoff.SendChat(text)
	case order.ChannelEmail:
		m.handoff.SendEmail(m.format.Subject(), text)
	}

	m.placed = &o
	m.step = StepConfirm
	return nil
}

// onCartChange держит инвариант: на шаге Details корзина не пустая.
func (m *Machine) onCartChange(e cart.Event) {
	if m.step == StepDetails && e.Count == 0 {
		m.step = StepItems
	}
}

// Validate проверяет обязательные поля контакта (имя и телефон).
func Validate(c order.Contact) error {
	var missing []Field
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, FieldPhone)
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
