package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderKeepsCartOrder(t *testing.T) {
	cart := &Cart{SessionID: "sess"}
	for _, id := range []string{"p3", "p1", "p2"} {
		cart.Add(&Product{ID: id, Name: id, Price: 2, SellerID: "s1"})
	}
	cart.Add(&Product{ID: "p1", Name: "p1", Price: 2, SellerID: "s1"})

	for i := 0; i < 10; i++ {
		order := NewOrder("u1", Shipping{Name: "Ann"}, cart)
		require.Len(t, order.Items, 3)
		assert.Equal(t, "p3", order.Items[0].ProductID)
		assert.Equal(t, "p1", order.Items[1].ProductID)
		assert.Equal(t, 2, order.Items[1].Quantity)
		assert.Equal(t, "p2", order.Items[2].ProductID)
		assert.Equal(t, order.ID, order.Items[0].OrderID)
		assert.Equal(t, StatusPending, order.Status)
	}
}
