package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/art-shop-bot/internal/checkout"
	"github.com/Spok95/art-shop-bot/internal/chrome"
	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
	"github.com/Spok95/art-shop-bot/internal/gallery"
	"github.com/Spok95/art-shop-bot/internal/order"
)

type view struct {
	text string
	kb   tgbotapi.InlineKeyboardMarkup
}

var fieldLabels = map[checkout.Field]string{
	checkout.FieldName:  "Nume",
	checkout.FieldPhone: "Telefon",
	checkout.FieldNote:  "Detalii comandă",
}

// renderCheckout — панель корзины для текущего шага.
func renderCheckout(s checkout.Snapshot, f *order.Formatter, invalid []checkout.Field) view {
	switch s.Step {
	case checkout.StepDetails:
		return renderDetails(s, f, invalid)
	case checkout.StepConfirm:
		return renderConfirm(s, f)
	default:
		return renderItems(s, f)
	}
}

func cartLines(s checkout.Snapshot, f *order.Formatter) string {
	var sb strings.Builder
	for i, it := range s.Items {
		fmt.Fprintf(&sb, "%d. %s", i+1, it.Name)
		if it.Option != "" {
			fmt.Fprintf(&sb, " (%s)", it.Option)
		}
		fmt.Fprintf(&sb, " - %s\n", f.Price(it.Price))
	}
	return sb.String()
}

func renderItems(s checkout.Snapshot, f *order.Formatter) view {
	if len(s.Items) == 0 {
		return view{
			text: "🛒 Coșul tău\n\nCoșul este gol.",
			kb: tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🛍 Magazin", "shop:tab:ready"),
				tgbotapi.NewInlineKeyboardButtonData("🎨 Pe comandă", "shop:tab:custom"),
			)),
		}
	}

	text := fmt.Sprintf("🛒 Coșul tău (%d)\n\n%s\nTOTAL: %s", len(s.Items), cartLines(s, f), f.Price(s.Total))

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for i, it := range s.Items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("❌ %d. %s", i+1, it.Name), "cart:rm:"+callbackKey(it.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Continuă ➡️", "co:proceed")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🛍 Magazin", "shop:tab:ready")),
	)
	return view{text: text, kb: tgbotapi.NewInlineKeyboardMarkup(rows...)}
}

func renderDetails(s checkout.Snapshot, f *order.Formatter, invalid []checkout.Field) view {
	var sb strings.Builder
	sb.WriteString("📝 Detalii comandă\n\n")
	sb.WriteString(cartLines(s, f))
	fmt.Fprintf(&sb, "TOTAL: %s\n\n", f.Price(s.Total))

	values := map[checkout.Field]string{
		checkout.FieldName:  s.Contact.Name,
		checkout.FieldPhone: s.Contact.Phone,
		checkout.FieldNote:  s.Contact.Note,
	}
	for _, fld := range []checkout.Field{checkout.FieldName, checkout.FieldPhone, checkout.FieldNote} {
		v := values[fld]
		if v == "" {
			v = "—"
		}
		mark := ""
		if hasField(invalid, fld) {
			mark = " ⚠️ obligatoriu"
		}
		fmt.Fprintf(&sb, "%s: %s%s\n", fieldLabels[fld], v, mark)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Nume", "co:edit:name"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Telefon", "co:edit:phone"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Detalii", "co:edit:note"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 WhatsApp", "co:submit:whatsapp"),
			tgbotapi.NewInlineKeyboardButtonData("✉️ Email", "co:submit:email"),
		),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⬅️ Înapoi", "co:back")),
	)
	return view{text: strings.TrimRight(sb.String(), "\n"), kb: kb}
}

func renderConfirm(s checkout.Snapshot, f *order.Formatter) view {
	text := "✅ Comanda a fost pregătită!"
	if s.Order != nil {
		text = fmt.Sprintf("✅ Comanda %s a fost pregătită!\nTotal: %s\n\nMulțumim, %s! Revenim cât de curând.",
			s.Order.ID, f.Price(s.Order.Total), s.Order.Contact.Name)
	}
	return view{
		text: text,
		kb: tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🆕 Comandă nouă", "co:new"),
		)),
	}
}

func hasField(fs []checkout.Field, f checkout.Field) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

func shopTabsRow(active catalog.Kind) []tgbotapi.InlineKeyboardButton {
	label := func(k catalog.Kind, s string) string {
		if k == active {
			return "• " + s + " •"
		}
		return s
	}
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(label(catalog.KindReady, "Gata făcut"), "shop:tab:ready"),
		tgbotapi.NewInlineKeyboardButtonData(label(catalog.KindCustom, "Pe comandă"), "shop:tab:custom"),
	)
}

// renderShop — одна вкладка магазина. Пустой каталог показывается заглушкой.
func renderShop(cat catalog.Catalog, tab catalog.Kind, f *order.Formatter) view {
	rows := [][]tgbotapi.InlineKeyboardButton{shopTabsRow(tab)}
	var sb strings.Builder

	switch tab {
	case catalog.KindCustom:
		sb.WriteString("🎨 Servicii pe comandă\n\n")
		if len(cat.CustomServices) == 0 {
			sb.WriteString("Momentan nu sunt servicii disponibile.")
		}
		for _, s := range cat.CustomServices {
			fmt.Fprintf(&sb, "▪️ %s — de la %s\n", s.Name, f.Price(s.BasePrice))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🎨 "+s.Name, "shop:svc:"+callbackKey(s.ID)),
			))
		}
	default:
		sb.WriteString("🛍 Produse gata făcute\n\n")
		if len(cat.ReadyProducts) == 0 {
			sb.WriteString("Momentan nu sunt produse disponibile.")
		}
		for _, p := range cat.ReadyProducts {
			mark := "▪️"
			if p.Highlight {
				mark = "✨"
			}
			fmt.Fprintf(&sb, "%s %s — %s", mark, p.Name, f.Price(p.Price))
			if p.Category != "" {
				fmt.Fprintf(&sb, " (%s)", p.Category)
			}
			sb.WriteString("\n")
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("➕ %s · %s", p.Name, f.Price(p.Price)), "cart:addr:"+callbackKey(p.ID)),
			))
		}
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🛒 Coș", "cart:show")))
	return view{text: strings.TrimRight(sb.String(), "\n"), kb: tgbotapi.NewInlineKeyboardMarkup(rows...)}
}

// renderService — карточка услуги с выбором конфигурации.
func renderService(s catalog.CustomService, f *order.Formatter) view {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎨 %s\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", s.Description)
	}
	fmt.Fprintf(&sb, "\nPreț: %s\nAlege varianta:", f.Price(s.BasePrice))

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for i, opt := range s.Options {
		label := "➕ " + opt
		if i == 0 {
			label += " ✓"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("cart:addc:%s:%d", callbackKey(s.ID), i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Înapoi", "shop:tab:custom"),
	))
	return view{text: sb.String(), kb: tgbotapi.NewInlineKeyboardMarkup(rows...)}
}

// renderGallery — сетка фото текущей категории и фильтры.
func renderGallery(v *gallery.Viewer) view {
	photos := v.Photos()
	text := fmt.Sprintf("🖼 Galerie — %s (%d)", v.Category(), len(photos))
	if len(photos) == 0 {
		text += "\n\nNu sunt fotografii în această categorie."
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	var row []tgbotapi.InlineKeyboardButton
	for i, c := range v.Categories() {
		label := c
		if c == v.Category() {
			label = "• " + c + " •"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("gal:cat:%d", i)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
		row = nil
	}

	for i, p := range photos {
		title := p.Title
		if title == "" {
			title = fmt.Sprintf("Foto %d", i+1)
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(title, fmt.Sprintf("gal:open:%d", i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return view{text: text, kb: tgbotapi.NewInlineKeyboardMarkup(rows...)}
}

// renderLightbox — открытое фото. Ссылка на картинку последней строкой,
// чтобы Telegram показал превью.
func renderLightbox(v *gallery.Viewer, baseURL string, playing bool) view {
	p, ok := v.Current()
	if !ok {
		return view{text: "Galeria este închisă."}
	}
	var sb strings.Builder
	sb.WriteString(p.Title)
	if p.Description != "" {
		sb.WriteString("\n" + p.Description)
	}
	fmt.Fprintf(&sb, "\n\n%s", v.Counter())
	if p.Image != "" {
		sb.WriteString("\n" + imageURL(baseURL, p.Image))
	}

	play := "▶️"
	if playing {
		play = "⏸"
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️", "gal:prev"),
			tgbotapi.NewInlineKeyboardButtonData(play, "gal:play"),
			tgbotapi.NewInlineKeyboardButtonData("➡️", "gal:next"),
		),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✖️ Închide", "gal:close")),
	)
	return view{text: strings.TrimLeft(sb.String(), "\n"), kb: kb}
}

func imageURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || base == "" {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

var toastMarkers = map[string]string{
	"#859F3D": "🟢",
	"#FFD700": "🟡",
	"#ffffff": "⚪️",
}

func renderToast(t chrome.Toast) string {
	marker := toastMarkers[t.Color]
	if marker == "" {
		marker = "💬"
	}
	if t.Side == chrome.SideRight {
		return fmt.Sprintf("„%s” %s\n— %s", t.Review.Text, marker, t.Review.Author)
	}
	return fmt.Sprintf("%s „%s”\n— %s", marker, t.Review.Text, t.Review.Author)
}

func renderContact(shop Shop) view {
	text := fmt.Sprintf("✉️ Contact\n\nWhatsApp: +%s\nEmail: %s", strings.TrimPrefix(shop.WhatsAppPhone, "+"), shop.Email)
	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("💬 WhatsApp", order.WhatsAppURL(shop.WhatsAppPhone, "")),
	))
	return view{text: text, kb: kb}
}
