package catalog

type Kind string

const (
	KindReady  Kind = "ready"  // готовые товары (вкладка «Magazin»)
	KindCustom Kind = "custom" // услуги на заказ с выбором конфигурации
)

// Entry — то, что можно положить в корзину.
type Entry interface {
	EntryID() string
	EntryName() string
	EntryPrice() int
}

type ReadyProduct struct {
	ID        string
	Name      string
	Price     int
	Image     string
	Category  string
	Highlight bool // holo-карточка
}

func (p ReadyProduct) EntryID() string   { return p.ID }
func (p ReadyProduct) EntryName() string { return p.Name }
func (p ReadyProduct) EntryPrice() int   { return p.Price }

type CustomService struct {
	ID          string
	Name        string
	BasePrice   int
	Image       string
	Color       string
	Description string
	Options     []string // первый вариант выбран по умолчанию
}

func (s CustomService) EntryID() string   { return s.ID }
func (s CustomService) EntryName() string { return s.Name }
func (s CustomService) EntryPrice() int   { return s.BasePrice }

// DefaultOption возвращает вариант, выбранный по умолчанию.
func (s CustomService) DefaultOption() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[0]
}

// Option возвращает вариант по индексу; ok=false, если индекса нет.
func (s CustomService) Option(idx int) (string, bool) {
	if idx < 0 || idx >= len(s.Options) {
		return "", false
	}
	return s.Options[idx], true
}

type Catalog struct {
	ReadyProducts  []ReadyProduct
	CustomServices []CustomService
}

func (c Catalog) Ready(id string) (ReadyProduct, bool) {
	for _, p := range c.ReadyProducts {
		if p.ID == id {
			return p, true
		}
	}
	return ReadyProduct{}, false
}

func (c Catalog) Custom(id string) (CustomService, bool) {
	for _, s := range c.CustomServices {
		if s.ID == id {
			return s, true
		}
	}
	return CustomService{}, false
}

func (c Catalog) Empty() bool {
	return len(c.ReadyProducts) == 0 && len(c.CustomServices) == 0
}
