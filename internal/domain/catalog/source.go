package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Spok95/art-shop-bot/internal/markup"
)

// Open загружает каталог один раз при старте. По расширению выбирается
// источник: .xlsx — книга Excel, иначе HTML-страница. Отсутствие файла
// не ошибка, каталог просто пустой.
func Open(path string, log *slog.Logger) (Catalog, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Catalog{ReadyProducts: []ReadyProduct{}, CustomServices: []CustomService{}}, nil
		}
		if err != nil {
			return Catalog{}, fmt.Errorf("open catalog: %w", err)
		}
		defer func() { _ = f.Close() }()
		return LoadWorkbook(f)
	}

	doc, err := markup.Open(path)
	if err != nil {
		return Catalog{}, err
	}
	return NewLoader(doc, log).Load(), nil
}
