package model

import "github.com/shopspring/decimal"

// カタログAPI（/books/{id}）の本
type Book struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Price     decimal.Decimal `json:"price"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Stock     int64           `json:"stock,omitempty"`
}

// Ref はカート明細用の参照に変換
func (b Book) Ref() BookRef {
	return BookRef{
		ID:    b.ID,
		Title: b.Title,
		Price: b.Price,
		Image: b.Thumbnail,
	}
}
