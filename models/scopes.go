package models

import (
	"strconv"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

// Page is the listing window requested through ?page=&count=. A zero Page
// means "no pagination".
type Page struct {
	Page  int
	Count int
}

// ParsePage reads the page and count query values. count is clamped to
// MaxPageSize and page to MaxPage; out-of-range numbers clamp too.
func ParsePage(page, count string) Page {
	p, _ := strconv.Atoi(page)
	if p <= 0 {
		return Page{}
	}
	p = min(p, MaxPage)
	n, _ := strconv.Atoi(count)
	if n <= 0 {
		n = DefaultPageSize
	}
	return Page{Page: p, Count: min(n, MaxPageSize)}
}

func (p Page) Enabled() bool {
	return p.Page > 0
}

// Paginate is a gorm scope applying the page window.
func Paginate(p Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !p.Enabled() {
			return db
		}
		return db.Offset((p.Page - 1) * p.Count).Limit(p.Count)
	}
}

// OwnerPhoneLike restricts carts/orders to those whose owner phone contains
// search.
func OwnerPhoneLike(search string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		return db.Where("user_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&User{}).Select("id").Where("phone LIKE ?", "%"+search+"%"))
	}
}
