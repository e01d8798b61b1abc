package bot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/art-shop-bot/internal/checkout"
	"github.com/Spok95/art-shop-bot/internal/chrome"
	"github.com/Spok95/art-shop-bot/internal/dialog"
	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
)

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	b.request(resp)
}

// renderPanel — наблюдатель машины оформления: перерисовывает панель
// корзины. Вызывается под sess.Lock (из Dispatch).
func (b *Bot) renderPanel(sess *dialog.Session, snap checkout.Snapshot) {
	v := renderCheckout(snap, b.format, sess.Invalid)
	if sess.PanelMsgID != 0 {
		// Telegram отвечает ошибкой на правку без изменений
		if v.text == sess.PanelText {
			return
		}
		b.send(tgbotapi.NewEditMessageTextAndMarkup(sess.ChatID, sess.PanelMsgID, v.text, v.kb))
		sess.PanelText = v.text
		return
	}
	m := tgbotapi.NewMessage(sess.ChatID, v.text)
	m.ReplyMarkup = v.kb
	if sent, ok := b.send(m); ok {
		sess.PanelMsgID = sent.MessageID
		sess.PanelText = v.text
	}
}

// freshPanel убирает старую панель, следующий renderPanel пришлёт новую.
func (b *Bot) freshPanel(sess *dialog.Session) {
	if sess.PanelMsgID != 0 {
		b.request(tgbotapi.NewDeleteMessage(sess.ChatID, sess.PanelMsgID))
	}
	sess.PanelMsgID = 0
	sess.PanelText = ""
}

// attachPanel делает панелью сообщение, на кнопку которого нажали.
func (b *Bot) attachPanel(sess *dialog.Session, msgID int) {
	if sess.PanelMsgID != msgID {
		sess.PanelMsgID = msgID
		sess.PanelText = ""
	}
}

func (b *Bot) showHome(chatID int64) {
	m := tgbotapi.NewMessage(chatID,
		"Bun venit la Matteo Lungu Art! 🎨\n\nCaricaturi, portrete și live drawing. Alege o secțiune din meniu sau scrie /help.")
	m.ReplyMarkup = mainReplyKeyboard()
	b.send(m)
}

func (b *Bot) showShop(sess *dialog.Session, editMsgID *int) {
	v := renderShop(b.currentCatalog(), sess.ShopTab, b.format)
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(sess.ChatID, *editMsgID, v.text, v.kb))
	} else {
		m := tgbotapi.NewMessage(sess.ChatID, v.text)
		m.ReplyMarkup = v.kb
		b.send(m)
	}
}

func (b *Bot) showGallery(sess *dialog.Session, editMsgID *int) {
	v := renderGallery(sess.Viewer)
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(sess.ChatID, *editMsgID, v.text, v.kb))
	} else {
		m := tgbotapi.NewMessage(sess.ChatID, v.text)
		m.ReplyMarkup = v.kb
		b.send(m)
	}
}

func (b *Bot) showLightbox(sess *dialog.Session) {
	v := b.lightboxView(sess.Viewer)
	if sess.GalleryMsgID != 0 {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(sess.ChatID, sess.GalleryMsgID, v.text, v.kb))
		return
	}
	m := tgbotapi.NewMessage(sess.ChatID, v.text)
	m.ReplyMarkup = v.kb
	if sent, ok := b.send(m); ok {
		sess.GalleryMsgID = sent.MessageID
	}
}

// dropLightbox удаляет сообщение лайтбокса; состояние Viewer не трогает.
func (b *Bot) dropLightbox(sess *dialog.Session) {
	if sess.GalleryMsgID != 0 {
		b.request(tgbotapi.NewDeleteMessage(sess.ChatID, sess.GalleryMsgID))
	}
	sess.GalleryMsgID = 0
}

// showToast показывает следующий отзыв и удаляет его после показа и
// затухания.
func (b *Bot) showToast(chatID int64) {
	b.reviewsMu.Lock()
	t := b.reviews.Next()
	b.reviewsMu.Unlock()

	sent, ok := b.send(tgbotapi.NewMessage(chatID, renderToast(t)))
	if !ok {
		return
	}
	time.AfterFunc(b.toastTTL+chrome.ToastFadeOut, func() {
		b.request(tgbotapi.NewDeleteMessage(chatID, sent.MessageID))
	})
}

func (b *Bot) showContact(chatID int64) {
	v := renderContact(b.shop)
	m := tgbotapi.NewMessage(chatID, v.text)
	m.ReplyMarkup = v.kb
	b.send(m)
}

// handleDocument — админ присылает xlsx и заменяет каталог целиком.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.From == nil || msg.From.ID != b.adminChat {
		b.send(tgbotapi.NewMessage(chatID, "Acces interzis."))
		return
	}
	if !strings.EqualFold(filepath.Ext(msg.Document.FileName), ".xlsx") {
		b.send(tgbotapi.NewMessage(chatID, "Trimite un fișier .xlsx (ca cel de la /export)."))
		return
	}

	data, err := b.downloadTelegramFile(ctx, msg.Document.FileID)
	if err != nil {
		b.log.Error("catalog download failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Nu am putut descărca fișierul."))
		return
	}
	cat, err := catalog.LoadWorkbook(bytes.NewReader(data))
	if err != nil {
		b.log.Error("catalog import failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Fișier invalid: "+err.Error()))
		return
	}

	b.setCatalog(cat)
	b.log.Info("catalog replaced", "ready", len(cat.ReadyProducts), "custom", len(cat.CustomServices))
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Catalog actualizat: %d produse, %d servicii custom.",
		len(cat.ReadyProducts), len(cat.CustomServices))))
}

// downloadTelegramFile скачивает файл по FileID через Telegram API.
func (b *Bot) downloadTelegramFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
