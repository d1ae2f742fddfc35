package model

import "github.com/shopspring/decimal"

// クライアント側で保持するカート
// Local=true のときIDはサーバー呼び出しに使わない
type Cart struct {
	ID        int64      `json:"id"`
	Items     []CartItem `json:"items"`
	Local     bool       `json:"local"`
	Persisted bool       `json:"persisted"`
}

// 未ログイン時の空カート
func NewLocalCart(items []CartItem) Cart {
	return Cart{Items: cloneItems(items), Local: true}
}

// サーバー側にカートが無いとき（404）の空カート
func NewAbsentRemoteCart() Cart {
	return Cart{Items: []CartItem{}}
}

// Totalは price*quantity の合計
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Countは quantity の合計
func (c Cart) Count() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// IndexOf は bookID の明細位置を返す（無ければ-1）
func (c Cart) IndexOf(bookID int64) int {
	for i, it := range c.Items {
		if it.Book.ID == bookID {
			return i
		}
	}
	return -1
}

// Clone は購読者に渡すためのコピー
func (c Cart) Clone() Cart {
	c.Items = cloneItems(c.Items)
	return c
}

func cloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
