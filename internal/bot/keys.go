package bot

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/Spok95/art-shop-bot/internal/domain/cart"
	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
)

// callbackKey сжимает id из каталога или корзины до короткого ключа:
// callback_data в Telegram ограничена 64 байтами, а id берутся из разметки
// сайта и бывают любой длины.
func callbackKey(id string) string {
	return strconv.FormatUint(xxhash.Sum64String(id), 36)
}

func readyByKey(c catalog.Catalog, key string) (catalog.ReadyProduct, bool) {
	for _, p := range c.ReadyProducts {
		if callbackKey(p.ID) == key {
			return p, true
		}
	}
	return catalog.ReadyProduct{}, false
}

func customByKey(c catalog.Catalog, key string) (catalog.CustomService, bool) {
	for _, s := range c.CustomServices {
		if callbackKey(s.ID) == key {
			return s, true
		}
	}
	return catalog.CustomService{}, false
}

func itemByKey(items []cart.LineItem, key string) (cart.LineItem, bool) {
	for _, it := range items {
		if callbackKey(it.ID) == key {
			return it, true
		}
	}
	return cart.LineItem{}, false
}
