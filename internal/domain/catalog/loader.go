package catalog

import (
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Spok95/art-shop-bot/internal/markup"
)

const (
	readyContainer  = "readyProductsData"
	readyItem       = "product-data"
	customContainer = "customServicesData"
	customItem      = "service-data"
	optionClass     = "option"
)

// Loader достаёт каталог из HTML-разметки сайта. Ошибок не возвращает:
// отсутствие данных даёт пустой список, кривые числа читаются как 0.
type Loader struct {
	doc *markup.Document
	log *slog.Logger
}

func NewLoader(doc *markup.Document, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{doc: doc, log: log}
}

func (l *Loader) LoadReadyProducts() []ReadyProduct {
	sel, found := l.doc.Items(readyContainer, readyItem)
	if !found {
		l.log.Warn("catalog container not found", "container", readyContainer)
		return []ReadyProduct{}
	}

	out := make([]ReadyProduct, 0, sel.Length())
	sel.Each(func(_ int, el *goquery.Selection) {
		out = append(out, ReadyProduct{
			ID:        markup.Data(el, "id"),
			Name:      markup.Data(el, "name"),
			Price:     markup.DataInt(el, "price"),
			Image:     markup.Data(el, "image"),
			Category:  markup.Data(el, "category"),
			Highlight: markup.DataBool(el, "holo"),
		})
	})
	l.log.Info("ready products loaded", "count", len(out))
	return out
}

func (l *Loader) LoadCustomServices() []CustomService {
	sel, found := l.doc.Items(customContainer, customItem)
	if !found {
		l.log.Warn("catalog container not found", "container", customContainer)
		return []CustomService{}
	}

	out := make([]CustomService, 0, sel.Length())
	sel.Each(func(_ int, el *goquery.Selection) {
		var opts []string
		el.Find("." + optionClass).Each(func(_ int, o *goquery.Selection) {
			if txt := strings.TrimSpace(o.Text()); txt != "" {
				opts = append(opts, txt)
			}
		})
		id := markup.Data(el, "id")
		if len(opts) == 0 {
			// без вариантов услугу нельзя сконфигурировать
			l.log.Warn("custom service without options skipped", "id", id)
			return
		}
		out = append(out, CustomService{
			ID:          id,
			Name:        markup.Data(el, "name"),
			BasePrice:   markup.DataInt(el, "price"),
			Image:       markup.Data(el, "image"),
			Color:       markup.Data(el, "color"),
			Description: markup.Data(el, "description"),
			Options:     opts,
		})
	})
	l.log.Info("custom services loaded", "count", len(out))
	return out
}

// Load читает оба списка.
func (l *Loader) Load() Catalog {
	return Catalog{
		ReadyProducts:  l.LoadReadyProducts(),
		CustomServices: l.LoadCustomServices(),
	}
}
