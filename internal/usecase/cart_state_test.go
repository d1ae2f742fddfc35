package usecase_test

import (
	"sync"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartState_SubscribeReceivesCurrentFirst(t *testing.T) {
	initial := model.NewLocalCart([]model.CartItem{{Book: book(1, "Go", 10), Quantity: 1}})
	s := usecase.NewCartState(initial)

	ch, cancel := s.Subscribe()
	defer cancel()

	assert.Equal(t, initial, <-ch)
}

func TestCartState_SlowSubscriberGetsLatestOnly(t *testing.T) {
	s := usecase.NewCartState(model.NewLocalCart(nil))
	ch, cancel := s.Subscribe()
	defer cancel()

	for i := int64(1); i <= 3; i++ {
		s.Publish(model.Cart{ID: i, Items: []model.CartItem{}, Persisted: true})
	}

	got := <-ch
	assert.Equal(t, int64(3), got.ID)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected value %+v", extra)
	default:
	}
}

func TestCartState_CancelClosesChannel(t *testing.T) {
	s := usecase.NewCartState(model.NewLocalCart(nil))
	ch, cancel := s.Subscribe()
	<-ch

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	// 解除後のPublishでpanicしない
	s.Publish(model.NewAbsentRemoteCart())
}

func TestCartState_CurrentIsACopy(t *testing.T) {
	s := usecase.NewCartState(model.NewLocalCart([]model.CartItem{{Book: book(1, "Go", 10), Quantity: 1}}))

	c := s.Current()
	c.Items[0].Quantity = 99

	assert.Equal(t, int64(1), s.Current().Items[0].Quantity)
}

func TestCartState_ConcurrentPublish(t *testing.T) {
	s := usecase.NewCartState(model.NewLocalCart(nil))
	ch, cancel := s.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Publish(model.Cart{ID: id, Items: []model.CartItem{}, Persisted: true})
		}(i)
	}
	wg.Wait()

	// 最後に配られた値と Current が一致する
	got := <-ch
	require.Equal(t, s.Current(), got)
}

func TestCartState_LastError(t *testing.T) {
	s := usecase.NewCartState(model.NewLocalCart(nil))
	assert.Empty(t, s.LastError())

	s.SetError("cart operation failed: load")
	assert.Equal(t, "cart operation failed: load", s.LastError())
}
