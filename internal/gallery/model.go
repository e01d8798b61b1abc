package gallery

// AllCategories — фильтр «все фото».
const AllCategories = "toate"

type Photo struct {
	ID          string
	Category    string
	Title       string
	Description string
	Image       string
}
