package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/art-shop-bot/internal/checkout"
	"github.com/Spok95/art-shop-bot/internal/chrome"
	"github.com/Spok95/art-shop-bot/internal/dialog"
	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
	"github.com/Spok95/art-shop-bot/internal/gallery"
	"github.com/Spok95/art-shop-bot/internal/order"
)

// scrollStep — сколько «прокрутки» засчитывается за один переход по
// галерее или магазину. Отзыв всплывает, когда набралось больше порога.
const scrollStep = 250

const helpText = `Comenzi:
/start — meniul principal
/shop — produse gata făcute
/custom — servicii pe comandă
/cart — coșul tău
/gallery — galerie
/reviews — ce spun clienții
/contact — date de contact

Scurtături: H — acasă, S — shop, G — galerie, C — contact.`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := b.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	// любая команда отменяет ожидание ввода
	sess.Input = dialog.StateIdle

	switch msg.Command() {
	case "start":
		b.showHome(chatID)
	case "help":
		b.send(tgbotapi.NewMessage(chatID, helpText))
	case "shop":
		sess.ShopTab = catalog.KindReady
		b.showShop(sess, nil)
	case "custom":
		sess.ShopTab = catalog.KindCustom
		b.showShop(sess, nil)
	case "cart":
		b.freshPanel(sess)
		b.renderPanel(sess, sess.Machine.Snapshot())
	case "gallery":
		b.showGallery(sess, nil)
	case "reviews":
		b.showToast(chatID)
	case "contact":
		b.showContact(chatID)
	case "export":
		if msg.From == nil || msg.From.ID != b.adminChat {
			b.send(tgbotapi.NewMessage(chatID, "Acces interzis."))
			return
		}
		b.exportCatalogExcel(chatID)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Nu cunosc această comandă. Scrie /help"))
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Document != nil {
		b.handleDocument(ctx, msg)
		return
	}

	sess := b.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	// Ввод полей контакта
	if field, ok := dialog.FieldFor(sess.Input); ok {
		b.applyContactInput(sess, field, msg.Text)
		return
	}

	// Нижнее меню и ярлыки разделов
	if sec, ok := chrome.Resolve(msg.Text); ok {
		b.showSection(sess, sec)
		return
	}

	b.send(tgbotapi.NewMessage(chatID, "Folosește meniul de mai jos sau /help."))
}

func (b *Bot) applyContactInput(sess *dialog.Session, field checkout.Field, text string) {
	sess.Input = dialog.StateIdle
	if sess.IsInvalid(field) && strings.TrimSpace(text) != "" {
		sess.Invalid = dropField(sess.Invalid, field)
	}
	// ответ пользователя сдвинул панель вверх, рисуем её заново внизу
	b.freshPanel(sess)
	if _, err := b.dispatch(sess, checkout.EditContact{Field: field, Value: strings.TrimSpace(text)}); err != nil {
		b.renderPanel(sess, sess.Machine.Snapshot())
	}
}

func (b *Bot) showSection(sess *dialog.Session, sec chrome.Section) {
	switch sec.ID {
	case "shop":
		b.showShop(sess, nil)
	case "galerie":
		b.showGallery(sess, nil)
	case "contact":
		b.showContact(sess.ChatID)
	default:
		b.showHome(sess.ChatID)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	data := cb.Data
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	sess := b.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	parts := strings.Split(data, ":")
	if len(parts) < 2 {
		b.answerCallback(cb, "", false)
		return
	}

	switch parts[0] {
	case "shop":
		b.onShopCallback(sess, cb, parts[1:], msgID)
	case "cart":
		b.onCartCallback(sess, cb, parts[1:], msgID)
	case "co":
		b.attachPanel(sess, msgID)
		b.onCheckoutCallback(sess, cb, parts[1:])
	case "gal":
		b.onGalleryCallback(sess, cb, parts[1:], msgID)
	default:
		b.answerCallback(cb, "", false)
	}
}

func (b *Bot) onShopCallback(sess *dialog.Session, cb *tgbotapi.CallbackQuery, args []string, msgID int) {
	switch {
	case len(args) == 2 && args[0] == "tab":
		sess.ShopTab = catalog.Kind(args[1])
		if sess.ShopTab != catalog.KindCustom {
			sess.ShopTab = catalog.KindReady
		}
		b.showShop(sess, &msgID)
		b.scroll(sess)
		b.answerCallback(cb, "", false)

	case len(args) == 2 && args[0] == "svc":
		svc, ok := customByKey(b.currentCatalog(), args[1])
		if !ok {
			b.answerCallback(cb, "Serviciul nu mai este disponibil", true)
			return
		}
		v := renderService(svc, b.format)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(sess.ChatID, msgID, v.text, v.kb))
		b.answerCallback(cb, "", false)

	default:
		b.answerCallback(cb, "", false)
	}
}

func (b *Bot) onCartCallback(sess *dialog.Session, cb *tgbotapi.CallbackQuery, args []string, msgID int) {
	cat := b.currentCatalog()
	switch args[0] {
	case "addr":
		if len(args) != 2 {
			break
		}
		p, ok := readyByKey(cat, args[1])
		if !ok {
			b.answerCallback(cb, "Produsul nu mai este disponibil", true)
			return
		}
		b.addToCart(sess, checkout.AddItem{Entry: p, Option: b.shop.ReadyOption})
		b.answerCallback(cb, "Adăugat în coș ✅", false)
		return

	case "addc":
		if len(args) != 3 {
			break
		}
		svc, ok := customByKey(cat, args[1])
		idx, err := strconv.Atoi(args[2])
		if !ok || err != nil {
			b.answerCallback(cb, "Serviciul nu mai este disponibil", true)
			return
		}
		opt, ok := svc.Option(idx)
		if !ok {
			opt = svc.DefaultOption()
		}
		b.addToCart(sess, checkout.AddItem{Entry: svc, Option: opt})
		b.answerCallback(cb, "Adăugat în coș ✅", false)
		return

	case "rm":
		if len(args) != 2 {
			break
		}
		b.attachPanel(sess, msgID)
		it, ok := itemByKey(sess.Machine.Snapshot().Items, args[1])
		if !ok {
			// кнопка со старой панели: позиции уже нет
			b.renderPanel(sess, sess.Machine.Snapshot())
			b.answerCallback(cb, "Produsul nu mai este în coș", false)
			return
		}
		b.dispatch(sess, checkout.RemoveItem{ItemID: it.ID})
		b.answerCallback(cb, "Șters", false)
		return

	case "show":
		b.freshPanel(sess)
		b.renderPanel(sess, sess.Machine.Snapshot())
	}
	b.answerCallback(cb, "", false)
}

// addToCart кладёт товар в корзину и показывает панель свежим сообщением,
// как сайт открывает корзину после добавления.
func (b *Bot) addToCart(sess *dialog.Session, a checkout.AddItem) {
	b.freshPanel(sess)
	b.dispatch(sess, a)
}

func (b *Bot) onCheckoutCallback(sess *dialog.Session, cb *tgbotapi.CallbackQuery, args []string) {
	var action checkout.Action
	switch args[0] {
	case "proceed":
		action = checkout.Proceed{}
	case "back":
		sess.Input = dialog.StateIdle
		action = checkout.Back{}
	case "new":
		action = checkout.NewOrder{}
	case "submit":
		if len(args) != 2 {
			b.answerCallback(cb, "", false)
			return
		}
		action = checkout.Submit{Channel: order.Channel(args[1])}
	case "edit":
		if len(args) != 2 || sess.Machine.Step() != checkout.StepDetails {
			b.answerCallback(cb, "", false)
			return
		}
		field := checkout.Field(args[1])
		st := dialog.StateFor(field)
		if st == dialog.StateIdle {
			b.answerCallback(cb, "", false)
			return
		}
		sess.Input = st
		b.send(tgbotapi.NewMessage(sess.ChatID, fieldPrompt(field)))
		b.answerCallback(cb, "", false)
		return
	default:
		b.answerCallback(cb, "", false)
		return
	}

	_, err := b.dispatch(sess, action)
	var verr *checkout.ValidationError
	switch {
	case err == nil:
		if _, ok := action.(checkout.Submit); ok {
			sess.Invalid = nil
			sess.Input = dialog.StateIdle
		}
		if _, ok := action.(checkout.NewOrder); ok {
			sess.Invalid = nil
		}
		b.answerCallback(cb, "", false)
	case errors.Is(err, checkout.ErrEmptyCart):
		b.answerCallback(cb, "Coșul este gol", true)
	case errors.As(err, &verr):
		// машина не уведомляет наблюдателей при ошибке, подсветку рисуем сами
		sess.Invalid = verr.Fields
		b.renderPanel(sess, sess.Machine.Snapshot())
		b.answerCallback(cb, "Completează: "+fieldList(verr.Fields), true)
	default:
		b.renderPanel(sess, sess.Machine.Snapshot())
		b.answerCallback(cb, "Acțiune indisponibilă acum", false)
	}
}

func (b *Bot) onGalleryCallback(sess *dialog.Session, cb *tgbotapi.CallbackQuery, args []string, msgID int) {
	v := sess.Viewer
	switch args[0] {
	case "cat":
		if len(args) != 2 {
			break
		}
		cats := v.Categories()
		i, err := strconv.Atoi(args[1])
		if err != nil || i < 0 || i >= len(cats) {
			break
		}
		v.SetCategory(cats[i])
		b.dropLightbox(sess)
		b.showGallery(sess, &msgID)
		b.scroll(sess)

	case "open":
		if len(args) != 2 {
			break
		}
		i, err := strconv.Atoi(args[1])
		if err != nil || !v.Open(i) {
			b.answerCallback(cb, "Fotografia nu mai există", false)
			return
		}
		// лайтбокс всегда открывается под сеткой, старый убираем
		b.dropLightbox(sess)
		b.showLightbox(sess)
		b.scroll(sess)

	case "next":
		v.Next()
		sess.GalleryMsgID = msgID
		b.showLightbox(sess)
		b.scroll(sess)

	case "prev":
		v.Prev()
		sess.GalleryMsgID = msgID
		b.showLightbox(sess)
		b.scroll(sess)

	case "play":
		if !v.IsOpen() {
			break
		}
		sess.GalleryMsgID = msgID
		on := v.Slideshow().Toggle(b.ctx)
		b.showLightbox(sess)
		if on {
			b.answerCallback(cb, "Slideshow pornit", false)
			return
		}
		b.answerCallback(cb, "Slideshow oprit", false)
		return

	case "close":
		v.Close()
		sess.GalleryMsgID = msgID
		b.dropLightbox(sess)
	}
	b.answerCallback(cb, "", false)
}

// slideshowTick — шаг слайдшоу из горутины таймера.
func (b *Bot) slideshowTick(ctx context.Context, sess *dialog.Session) {
	sess.Lock()
	defer sess.Unlock()
	// пока ждали блокировку, слайдшоу могли остановить
	if ctx.Err() != nil || !sess.Viewer.IsOpen() {
		return
	}
	sess.Viewer.Next()
	b.showLightbox(sess)
}

func (b *Bot) scroll(sess *dialog.Session) {
	sess.Scrolled += scrollStep
	if sess.Scroll.Observe(sess.Scrolled) {
		b.showToast(sess.ChatID)
	}
}

func fieldPrompt(f checkout.Field) string {
	switch f {
	case checkout.FieldName:
		return "Scrie numele tău:"
	case checkout.FieldPhone:
		return "Scrie numărul de telefon:"
	default:
		return "Scrie detalii despre comandă (opțional):"
	}
}

func fieldList(fs []checkout.Field) string {
	names := make([]string, 0, len(fs))
	for _, f := range fs {
		names = append(names, strings.ToLower(fieldLabels[f]))
	}
	return strings.Join(names, ", ")
}

func dropField(fs []checkout.Field, f checkout.Field) []checkout.Field {
	out := fs[:0]
	for _, x := range fs {
		if x != f {
			out = append(out, x)
		}
	}
	return out
}

// lightboxView учитывает, идёт ли слайдшоу: от этого зависит кнопка.
func (b *Bot) lightboxView(v *gallery.Viewer) view {
	playing := v.Slideshow() != nil && v.Slideshow().Running()
	return renderLightbox(v, b.photoBase, playing)
}
