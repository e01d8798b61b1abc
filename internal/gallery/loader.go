package gallery

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/Spok95/art-shop-bot/internal/markup"
)

// LoadPhotos читает #galleryData .photo-data. Нет контейнера — пустой список.
func LoadPhotos(doc *markup.Document) []Photo {
	sel, found := doc.Items("galleryData", "photo-data")
	if !found {
		return []Photo{}
	}
	out := make([]Photo, 0, sel.Length())
	sel.Each(func(_ int, el *goquery.Selection) {
		out = append(out, Photo{
			ID:          markup.Data(el, "id"),
			Category:    markup.Data(el, "category"),
			Title:       markup.Data(el, "title"),
			Description: markup.Data(el, "description"),
			Image:       markup.Data(el, "image"),
		})
	})
	return out
}
