// Package markup читает данные сайта, размеченные data-* атрибутами
// (каталог, галерея), из HTML-страницы.
package markup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Document struct {
	doc    *goquery.Document
	absent bool
}

// Parse разбирает HTML из r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Open читает HTML-файл. Отсутствие файла не ошибка: возвращается пустой
// документ, Absent() = true.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		d, perr := Parse(strings.NewReader(""))
		if perr != nil {
			return nil, perr
		}
		d.absent = true
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open markup: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

func (d *Document) Absent() bool { return d.absent }

// Items возвращает элементы itemClass внутри контейнера #containerID и
// found=false, если контейнера на странице нет.
func (d *Document) Items(containerID, itemClass string) (*goquery.Selection, bool) {
	container := d.doc.Find("#" + containerID)
	if container.Length() == 0 {
		return container, false
	}
	return container.Find("." + itemClass), true
}

// Data возвращает значение data-<name>.
func Data(s *goquery.Selection, name string) string {
	v, _ := s.Attr("data-" + name)
	return strings.TrimSpace(v)
}

// DataInt читает data-<name> как целое по правилам parseInt: ведущие пробелы,
// необязательный знак, затем цифры до первого нецифрового символа.
// Если цифр нет, результат 0.
func DataInt(s *goquery.Selection, name string) int {
	return ParseLeadingInt(Data(s, name))
}

func DataBool(s *goquery.Selection, name string) bool {
	return Data(s, name) == "true"
}

func ParseLeadingInt(raw string) int {
	raw = strings.TrimSpace(raw)
	neg := false
	if raw != "" && (raw[0] == '-' || raw[0] == '+') {
		neg = raw[0] == '-'
		raw = raw[1:]
	}
	n := 0
	digits := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if n > 1<<31 {
			return 0
		}
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
