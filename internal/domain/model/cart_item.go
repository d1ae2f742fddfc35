package model

import "github.com/shopspring/decimal"

// 明細が参照する本（追加時点の表示用の値）
type BookRef struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// カートの明細
// quantity >= 1、同じbook.idは1カートに1件まで
type CartItem struct {
	Book     BookRef `json:"book"`
	Quantity int64   `json:"quantity"`
}

func (it CartItem) Subtotal() decimal.Decimal {
	return it.Book.Price.Mul(decimal.NewFromInt(it.Quantity))
}

// MergeItem は同一商品なら数量加算、無ければ末尾に追加した新しいスライスを返す
func MergeItem(items []CartItem, item CartItem) []CartItem {
	out := cloneItems(items)
	for i := range out {
		if out[i].Book.ID == item.Book.ID {
			out[i].Quantity += item.Quantity
			return out
		}
	}
	return append(out, item)
}
