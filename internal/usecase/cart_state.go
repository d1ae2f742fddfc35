package usecase

import (
	"sync"

	"storefront/internal/domain/model"
)

// CartState は現在のカートを1つだけ持つ。
// 更新はPublishで丸ごと差し替え、購読者には最新値だけが届く。
type CartState struct {
	mu      sync.RWMutex
	cart    model.Cart
	lastErr string
	subs    map[int]chan model.Cart
	nextID  int
}

func NewCartState(initial model.Cart) *CartState {
	return &CartState{
		cart: initial.Clone(),
		subs: map[int]chan model.Cart{},
	}
}

// Current はコピーを返す
func (s *CartState) Current() model.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Publish はカートを差し替えて全購読者に配る
func (s *CartState) Publish(c model.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = c.Clone()
	for _, ch := range s.subs {
		offer(ch, s.cart.Clone())
	}
}

// Subscribe は現在値を最初に受け取るチャネルを返す。cancelで解除
func (s *CartState) Subscribe() (<-chan model.Cart, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan model.Cart, 1)
	ch <- s.cart.Clone()
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// 画面に出すエラーメッセージ
func (s *CartState) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

func (s *CartState) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// 読まれていない古い値は捨てて最新を入れる
func offer(ch chan model.Cart, c model.Cart) {
	select {
	case ch <- c:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- c:
	default:
	}
}
