package order

import (
	"time"

	"github.com/Spok95/art-shop-bot/internal/domain/cart"
)

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

func (c Channel) Valid() bool {
	return c == ChannelWhatsApp || c == ChannelEmail
}

// Contact — данные клиента из шага «Detalii».
type Contact struct {
	Name  string
	Phone string
	Note  string
}

type Order struct {
	ID        string
	CreatedAt time.Time
	Channel   Channel
	Contact   Contact
	Lines     []cart.LineItem
	Total     int
}
