package order

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"SmartShop/entity"
	"SmartShop/internal/database/memory"
	"SmartShop/internal/service/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	client  = &entity.UserAuth{ID: "u1", Username: "alice", Role: entity.ClientRole}
	seller1 = &entity.UserAuth{ID: "s1", Username: "bob", Role: entity.SellerRole}
	seller2 = &entity.UserAuth{ID: "s2", Username: "carol", Role: entity.SellerRole}
)

var shipping = entity.Shipping{
	Name:          "Alice",
	Address:       "1 Main St",
	Phone:         "+1 555 000 1111",
	PaymentMethod: "card",
}

type recorder struct {
	mu     sync.Mutex
	events []*entity.OrderEvent
}

func (r *recorder) PublishOrderEvent(event *entity.OrderEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type fixture struct {
	store  *memory.Store
	carts  *cart.Service
	orders *Service
	events *recorder
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	ctx := context.Background()
	now := time.Now()
	for _, p := range []*entity.Product{
		{ID: "p1", Name: "Kettle", Price: 25, SellerID: "s1", StockQuantity: 5, CreatedAt: now},
		{ID: "p2", Name: "Teapot", Price: 40, SellerID: "s1", StockQuantity: 2, CreatedAt: now},
		{ID: "p3", Name: "Mug", Price: 7, SellerID: "s2", StockQuantity: 10, CreatedAt: now},
	} {
		require.NoError(t, store.SaveProduct(ctx, p))
	}
	carts := cart.NewCartService(store, store, log)
	orders := NewOrderService(store, carts, strict, log)
	events := &recorder{}
	orders.SetEventPublisher(events)
	return &fixture{store: store, carts: carts, orders: orders, events: events}
}

// place checks out a cart holding the given product quantities.
func (f *fixture) place(t *testing.T, quantities map[string]int) *entity.Order {
	t.Helper()
	ctx := context.Background()
	session := "sess-" + t.Name()
	for id := range quantities {
		_, err := f.carts.Add(ctx, session, id)
		require.NoError(t, err)
	}
	_, err := f.carts.Update(ctx, session, quantities)
	require.NoError(t, err)

	order, err := f.orders.Checkout(ctx, client, session, shipping)
	require.NoError(t, err)
	return order
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.GetProduct(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func TestCheckout(t *testing.T) {
	f := newFixture(t, false)
	order := f.place(t, map[string]int{"p1": 2, "p3": 1})

	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, "u1", order.UserID)
	assert.Len(t, order.Items, 2)
	assert.InDelta(t, 57.0, order.Total(), 0.001)
	require.Len(t, order.History, 1)
	assert.Equal(t, entity.StatusPending, order.History[0].Status)

	cart, err := f.carts.Cart(context.Background(), "sess-"+t.Name())
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// checkout never touches stock
	assert.Equal(t, 5, f.stock(t, "p1"))
}

func TestCheckoutRules(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	_, err := f.orders.Checkout(ctx, client, "empty", shipping)
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = f.carts.Add(ctx, "sess", "p1")
	require.NoError(t, err)
	_, err = f.orders.Checkout(ctx, seller1, "sess", shipping)
	assert.ErrorIs(t, err, entity.ErrAuthorization)
}

func TestAcceptDecrementsOnlySellerStock(t *testing.T) {
	f := newFixture(t, false)
	order := f.place(t, map[string]int{"p1": 2, "p2": 1, "p3": 4})

	updated, err := f.orders.UpdateStatus(context.Background(), order.ID, "s1", "Accepted")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, updated.Status)

	assert.Equal(t, 3, f.stock(t, "p1"))
	assert.Equal(t, 1, f.stock(t, "p2"))
	assert.Equal(t, 10, f.stock(t, "p3"))

	stored, err := f.store.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, stored.Status)
	assert.Equal(t, []string{"s1"}, stored.StockDeductedBy)
	require.Len(t, stored.History, 2)
	assert.Equal(t, "s1", stored.History[1].ActorID)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, order.ID, f.events.events[0].OrderID)
	assert.Equal(t, entity.StatusAccepted, f.events.events[0].Status)
	assert.ElementsMatch(t, []string{"s1", "s2"}, f.events.events[0].SellerIDs)
}

func TestAcceptInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t, false)
	order := f.place(t, map[string]int{"p1": 2, "p2": 3})

	_, err := f.orders.UpdateStatus(context.Background(), order.ID, "s1", "Accepted")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInsufficientStock)

	var stockErr *entity.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p2", stockErr.Item.ProductID)
	assert.Contains(t, err.Error(), "Teapot")

	assert.Equal(t, 5, f.stock(t, "p1"))
	assert.Equal(t, 2, f.stock(t, "p2"))

	stored, err := f.store.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.Empty(t, stored.StockDeductedBy)
	assert.Len(t, stored.History, 1)
	assert.Empty(t, f.events.events)
}

func TestUpdateStatusAuthorization(t *testing.T) {
	f := newFixture(t, false)
	order := f.place(t, map[string]int{"p1": 1})

	_, err := f.orders.UpdateStatus(context.Background(), order.ID, "s2", "Accepted")
	assert.ErrorIs(t, err, entity.ErrAuthorization)

	_, err = f.orders.UpdateStatus(context.Background(), order.ID, "", "Accepted")
	assert.ErrorIs(t, err, entity.ErrAuthorization)

	assert.Equal(t, 5, f.stock(t, "p1"))
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.orders.UpdateStatus(context.Background(), "missing", "s1", "Accepted")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdateStatusUnknown(t *testing.T) {
	f := newFixture(t, false)
	order := f.place(t, map[string]int{"p1": 1})

	_, err := f.orders.UpdateStatus(context.Background(), order.ID, "s1", "Shipped")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestPermissiveTransitions(t *testing.T) {
	f := newFixture(t, false)
	order := f.place(t, map[string]int{"p1": 1})
	ctx := context.Background()

	updated, err := f.orders.UpdateStatus(ctx, order.ID, "s1", "Completed")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, updated.Status)

	updated, err = f.orders.UpdateStatus(ctx, order.ID, "s1", "Pending")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, updated.Status)

	// non-accept moves never decrement
	assert.Equal(t, 5, f.stock(t, "p1"))
}

func TestStrictTransitions(t *testing.T) {
	f := newFixture(t, true)
	order := f.place(t, map[string]int{"p1": 1})
	ctx := context.Background()

	_, err := f.orders.UpdateStatus(ctx, order.ID, "s1", "Completed")
	var transitionErr *entity.TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.ErrorIs(t, err, entity.ErrValidation)

	for _, status := range []string{"Accepted", "Prepared", "Out for Delivery", "Completed"} {
		_, err = f.orders.UpdateStatus(ctx, order.ID, "s1", status)
		require.NoError(t, err, status)
	}

	_, err = f.orders.UpdateStatus(ctx, order.ID, "s1", "Pending")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestAcceptOnlyOncePerSeller(t *testing.T) {
	f := newFixture(t, false)
	order := f.place(t, map[string]int{"p1": 2})
	ctx := context.Background()

	_, err := f.orders.UpdateStatus(ctx, order.ID, "s1", "Accepted")
	require.NoError(t, err)
	_, err = f.orders.UpdateStatus(ctx, order.ID, "s1", "Pending")
	require.NoError(t, err)
	_, err = f.orders.UpdateStatus(ctx, order.ID, "s1", "Accepted")
	require.NoError(t, err)

	assert.Equal(t, 3, f.stock(t, "p1"))
}

func TestMultiSellerAccept(t *testing.T) {
	f := newFixture(t, false)
	order := f.place(t, map[string]int{"p1": 1, "p3": 2})
	ctx := context.Background()

	_, err := f.orders.UpdateStatus(ctx, order.ID, "s1", "Accepted")
	require.NoError(t, err)
	// order is no longer pending, so the second seller's accept changes nothing in stock
	_, err = f.orders.UpdateStatus(ctx, order.ID, "s2", "Accepted")
	require.NoError(t, err)

	assert.Equal(t, 4, f.stock(t, "p1"))
	assert.Equal(t, 10, f.stock(t, "p3"))
}

func TestConcurrentAccepts(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	order := f.place(t, map[string]int{"p2": 2})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.orders.UpdateStatus(ctx, order.ID, "s1", "Accepted")
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, f.stock(t, "p2"))
}

func TestOrderQueries(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	first := f.place(t, map[string]int{"p1": 1})
	second := f.place(t, map[string]int{"p3": 1})

	got, err := f.orders.GetForUser(ctx, client, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	other := &entity.UserAuth{ID: "u2", Role: entity.ClientRole}
	_, err = f.orders.GetForUser(ctx, other, first.ID)
	assert.ErrorIs(t, err, entity.ErrAuthorization)

	_, err = f.orders.GetForUser(ctx, client, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	mine, err := f.orders.ListForUser(ctx, client)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.orders.ListForUser(ctx, seller1)
	assert.ErrorIs(t, err, entity.ErrAuthorization)

	s1, err := f.orders.ListForSeller(ctx, seller1)
	require.NoError(t, err)
	require.Len(t, s1, 1)
	assert.Equal(t, first.ID, s1[0].ID)

	s2, err := f.orders.ListForSeller(ctx, seller2)
	require.NoError(t, err)
	require.Len(t, s2, 1)
	assert.Equal(t, second.ID, s2[0].ID)

	_, err = f.orders.ListForSeller(ctx, client)
	assert.ErrorIs(t, err, entity.ErrAuthorization)
}
