package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/art-shop-bot/internal/checkout"
	"github.com/Spok95/art-shop-bot/internal/chrome"
	"github.com/Spok95/art-shop-bot/internal/dialog"
	"github.com/Spok95/art-shop-bot/internal/domain/cart"
	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
	"github.com/Spok95/art-shop-bot/internal/gallery"
	"github.com/Spok95/art-shop-bot/internal/infra/metrics"
	"github.com/Spok95/art-shop-bot/internal/order"
	"github.com/Spok95/art-shop-bot/internal/schedule"
)

// Sender — часть tgbotapi.BotAPI, через которую бот отправляет сообщения.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Shop struct {
	WhatsAppPhone string
	Email         string
	ReadyOption   string
}

type Deps struct {
	Log               *slog.Logger
	Catalog           catalog.Catalog
	Photos            []gallery.Photo
	PhotoBaseURL      string
	Formatter         *order.Formatter
	Metrics           *metrics.Metrics
	Shop              Shop
	AdminChatID       int64
	SlideshowInterval time.Duration
	ToastDisplay      time.Duration
	// SessionTTL — через сколько простоя сессия чата забывается; 0 — никогда.
	SessionTTL time.Duration
}

type Bot struct {
	api       *tgbotapi.BotAPI
	out       Sender
	log       *slog.Logger
	catMu     sync.RWMutex
	catalog   catalog.Catalog
	photos    []gallery.Photo
	photoBase string
	format    *order.Formatter
	metrics   *metrics.Metrics
	shop      Shop
	adminChat int64
	slideshow time.Duration
	toastTTL  time.Duration
	idleTTL   time.Duration
	reviewsMu sync.Mutex
	reviews   *chrome.Rotator
	sessions  *dialog.Repo

	// ctx живёт, пока работает Run; к нему привязаны таймеры сессий.
	ctx context.Context
}

func New(api *tgbotapi.BotAPI, d Deps) *Bot {
	return newBot(api, api, d)
}

func newBot(api *tgbotapi.BotAPI, out Sender, d Deps) *Bot {
	if d.Log == nil {
		d.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.ToastDisplay <= 0 {
		d.ToastDisplay = chrome.DefaultToastDisplay
	}
	b := &Bot{
		api: api, out: out, log: d.Log,
		catalog: d.Catalog, photos: d.Photos, photoBase: d.PhotoBaseURL,
		format: d.Formatter, metrics: d.Metrics, shop: d.Shop,
		adminChat: d.AdminChatID, slideshow: d.SlideshowInterval,
		toastTTL: d.ToastDisplay,
		idleTTL:  d.SessionTTL,
		reviews:  chrome.NewRotator(nil, nil),
		ctx:      context.Background(),
	}
	b.sessions = dialog.NewRepo(b.newSession)
	if b.metrics != nil {
		b.sessions.OnSize(func(n int) { b.metrics.Sessions.Set(float64(n)) })
	}
	return b
}

const sessionSweepEvery = 10 * time.Minute

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	b.ctx = ctx
	if b.idleTTL > 0 {
		sweep := schedule.NewRepeater(sessionSweepEvery, func(context.Context) { b.evictIdle(time.Now()) })
		sweep.Start(ctx)
		defer sweep.Stop()
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	b.handleCallback(ctx, upd.CallbackQuery)
}

// newSession собирает корзину, машину оформления и галерею для нового чата
// и подписывает рендер на их изменения.
func (b *Bot) newSession(chatID int64) *dialog.Session {
	sess := &dialog.Session{
		ChatID:  chatID,
		ShopTab: catalog.KindReady,
		Viewer:  gallery.NewViewer(b.photos),
		Scroll:  chrome.NewScrollTrigger(chrome.DefaultScrollTrigger),
	}

	store := cart.NewStore()
	store.Subscribe(func(e cart.Event) { b.onCartEvent(sess, e) })

	sess.Machine = checkout.New(store, b.format, &chatHandoff{b: b, chatID: chatID})
	sess.Machine.Subscribe(func(s checkout.Snapshot) { b.renderPanel(sess, s) })

	sess.Viewer.AttachSlideshow(gallery.NewSlideshow(b.slideshow, func(ctx context.Context) {
		b.slideshowTick(ctx, sess)
	}))
	return sess
}

// evictIdle забывает сессии чатов, молчавших дольше idleTTL.
func (b *Bot) evictIdle(now time.Time) {
	evicted := 0
	for _, id := range b.sessions.Idle(now.Add(-b.idleTTL)) {
		sess := b.sessions.Reset(id)
		if sess == nil {
			continue
		}
		// слайдшоу брошенной сессии не должно тикать дальше
		sess.Lock()
		sess.Viewer.Close()
		sess.Unlock()
		evicted++
	}
	if evicted > 0 {
		b.log.Info("idle sessions evicted", "evicted", evicted, "left", b.sessions.Len())
	}
}

func (b *Bot) onCartEvent(sess *dialog.Session, e cart.Event) {
	b.log.Debug("cart changed", "chat_id", sess.ChatID, "kind", e.Kind, "count", e.Count, "total", e.Total)
	if b.metrics == nil {
		return
	}
	switch e.Kind {
	case cart.EventAdded:
		b.metrics.CartAdds.Inc()
	case cart.EventRemoved:
		b.metrics.CartRemovals.Inc()
	}
}

// dispatch прогоняет действие через машину оформления и пишет метрики.
// Вызывается под sess.Lock.
func (b *Bot) dispatch(sess *dialog.Session, a checkout.Action) (checkout.Snapshot, error) {
	snap, err := sess.Machine.Dispatch(a)
	name := checkout.ActionName(a)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) && b.metrics != nil {
			for _, f := range verr.Fields {
				b.metrics.ValidationFailures.WithLabelValues(string(f)).Inc()
			}
		}
		b.log.Debug("checkout action rejected", "chat_id", sess.ChatID, "action", name, "err", err)
		return snap, err
	}
	if b.metrics != nil {
		b.metrics.Transitions.WithLabelValues(name, snap.Step.String()).Inc()
	}
	return snap, nil
}

// chatHandoff отдаёт заказ пользователю в виде ссылки WhatsApp или mailto.
type chatHandoff struct {
	b      *Bot
	chatID int64
}

// Лимиты Telegram: текст сообщения и разумная длина URL кнопки.
const (
	maxMessageLen = 4096
	maxButtonURL  = 2048
)

func fitsMessage(s string) bool { return utf8.RuneCountInString(s) <= maxMessageLen }

// SendChat даёт кнопку wa.me с готовым текстом. Если заказ не влезает
// в ссылку, кнопка открывает пустой чат, а текст уходит отдельно.
func (h *chatHandoff) SendChat(text string) {
	link := order.WhatsAppURL(h.b.shop.WhatsAppPhone, text)
	prompt := "Comanda e gata! Apasă butonul ca să o trimiți pe WhatsApp 👇"
	long := len(link) > maxButtonURL
	if long {
		link = order.WhatsAppURL(h.b.shop.WhatsAppPhone, "")
		prompt = "Comanda e prea lungă pentru un link. Copiază textul de mai jos și trimite-l pe WhatsApp 👇"
	}
	m := tgbotapi.NewMessage(h.chatID, prompt)
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("💬 Trimite pe WhatsApp", link)),
	)
	h.b.send(m)
	if long {
		h.b.sendText(h.chatID, "comanda.txt", text)
	}
	h.b.countHandoff(order.ChannelWhatsApp)
}

// SendEmail пишет адрес, тему и текст заказа; mailto-ссылка добавляется,
// только если всё помещается в одно сообщение.
func (h *chatHandoff) SendEmail(subject, body string) {
	link := order.MailtoURL(h.b.shop.Email, subject, body)
	text := fmt.Sprintf("✉️ Trimite comanda la %s\nSubiect: %s\n\n%s\n\n%s", h.b.shop.Email, subject, body, link)
	if fitsMessage(text) {
		m := tgbotapi.NewMessage(h.chatID, text)
		m.DisableWebPagePreview = true
		h.b.send(m)
		h.b.countHandoff(order.ChannelEmail)
		return
	}

	head := fmt.Sprintf("✉️ Trimite comanda la %s\nSubiect: %s\n\nTextul comenzii e mai jos, copiază-l în e-mail.",
		h.b.shop.Email, subject)
	m := tgbotapi.NewMessage(h.chatID, head)
	m.DisableWebPagePreview = true
	h.b.send(m)
	h.b.sendText(h.chatID, "comanda.txt", body)
	h.b.countHandoff(order.ChannelEmail)
}

// sendText шлёт текст сообщением, а если он длиннее лимита — файлом.
func (b *Bot) sendText(chatID int64, fileName, text string) {
	if fitsMessage(text) {
		m := tgbotapi.NewMessage(chatID, text)
		m.DisableWebPagePreview = true
		b.send(m)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: []byte(text)})
	doc.Caption = "Comanda completă"
	b.send(doc)
}

func (b *Bot) countHandoff(ch order.Channel) {
	if b.metrics != nil {
		b.metrics.Handoffs.WithLabelValues(string(ch)).Inc()
	}
}

// send отправляет сообщение; сетевые сбои повторяются с экспоненциальной
// паузой, ответы Telegram об ошибке (кроме flood-limit) не повторяются.
func (b *Bot) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	var sent tgbotapi.Message
	op := func() error {
		m, err := b.out.Send(c)
		if err != nil {
			var tgErr *tgbotapi.Error
			if errors.As(err, &tgErr) && tgErr.RetryAfter == 0 {
				return backoff.Permanent(err)
			}
			return err
		}
		sent = m
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), b.ctx)
	notify := func(err error, wait time.Duration) {
		b.log.Warn("send failed, retrying", "err", err, "wait", wait)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		b.log.Error("send failed", "err", err)
		return sent, false
	}
	return sent, true
}

// request — для методов, которые отвечают не сообщением (delete, callback).
func (b *Bot) request(c tgbotapi.Chattable) {
	if _, err := b.out.Request(c); err != nil {
		b.log.Warn("request failed", "err", err)
	}
}

func (b *Bot) currentCatalog() catalog.Catalog {
	b.catMu.RLock()
	defer b.catMu.RUnlock()
	return b.catalog
}

func (b *Bot) setCatalog(c catalog.Catalog) {
	b.catMu.Lock()
	b.catalog = c
	b.catMu.Unlock()
}

// CatalogWorkbook — текущий каталог в xlsx, для выгрузки по HTTP.
func (b *Bot) CatalogWorkbook() ([]byte, error) {
	return catalog.ExportWorkbook(b.currentCatalog())
}

// exportCatalogExcel отправляет админу текущий каталог в xlsx.
func (b *Bot) exportCatalogExcel(chatID int64) {
	cat := b.currentCatalog()
	data, err := catalog.ExportWorkbook(cat)
	if err != nil {
		b.log.Error("catalog export failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Eroare la generarea fișierului."))
		return
	}

	fileName := fmt.Sprintf("catalog_%s.xlsx", time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("Catalog: %d produse, %d servicii custom.",
		len(cat.ReadyProducts), len(cat.CustomServices))
	b.send(doc)
}
