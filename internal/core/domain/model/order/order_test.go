package order_test

import (
	"testing"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"
	"github.com/u44592/hni/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T) catalog.Location {
	t.Helper()
	addr, err := kernel.NewAddress("12 Oak Ave", "", "Springfield", "IL", "62701")
	require.NoError(t, err)
	loc, err := catalog.NewLocation(kernel.NewUUID(), kernel.NewUUID(), "Oak Kitchen", addr)
	require.NoError(t, err)
	return loc
}

func testItem(t *testing.T, name string, cents int64) catalog.MenuItem {
	t.Helper()
	item, err := catalog.NewMenuItem(kernel.NewUUID(), name, kernel.Money(cents))
	require.NoError(t, err)
	return item
}

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	userID := kernel.NewUUID()
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	loc := testLocation(t)

	t.Run("should build an open order with one line per item", func(t *testing.T) {
		stew := testItem(t, "Stew", 650)

		o, err := order.NewOrder(id, userID, now, loc, []catalog.MenuItem{stew})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.UserID().IsEqual(userID))
		assert.Equal(t, now, o.CreatedAt())
		assert.True(t, o.Location().IsEqual(loc))
		assert.Equal(t, order.Open, o.Status())
		require.Len(t, o.Items(), 1)
		assert.Equal(t, order.OrderedQuantity, o.Items()[0].Quantity())
		assert.Equal(t, kernel.Money(650), o.Items()[0].UnitPrice())
		assert.Equal(t, kernel.Money(650), o.Subtotal())
	})

	t.Run("subtotal sums every line", func(t *testing.T) {
		items := []catalog.MenuItem{testItem(t, "Stew", 650), testItem(t, "Bread", 125), testItem(t, "Tea", 99)}

		o, err := order.NewOrder(id, userID, now, loc, items)

		require.NoError(t, err)
		assert.Equal(t, kernel.Money(874), o.Subtotal())
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(id, userID, now, loc, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should join every validation error", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, now, catalog.Location{}, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "address must be created")
		assert.Contains(t, err.Error(), "order items")
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())

	var zero order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestRestoreOrder(t *testing.T) {
	loc := testLocation(t)
	item, err := order.NewItem(2, 300, testItem(t, "Soup", 300))
	require.NoError(t, err)

	t.Run("keeps stored status and subtotal", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now(), loc,
			[]order.Item{item}, 600, order.Ordered)

		require.NoError(t, err)
		assert.Equal(t, order.Ordered, o.Status())
		assert.Equal(t, kernel.Money(600), o.Subtotal())
		assert.Equal(t, kernel.Money(600), o.Items()[0].LineTotal())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now(), loc,
			[]order.Item{item}, 600, order.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Transitions(t *testing.T) {
	newOpen := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now(), testLocation(t),
			[]catalog.MenuItem{testItem(t, "Stew", 650)})
		require.NoError(t, err)
		return o
	}

	t.Run("open -> ordered -> closed", func(t *testing.T) {
		o := newOpen(t)

		require.NoError(t, o.Place())
		assert.Equal(t, order.Ordered, o.Status())
		require.NoError(t, o.Close())
		assert.Equal(t, order.Closed, o.Status())
		assert.True(t, o.Status().IsClosed())
	})

	t.Run("open orders can close directly", func(t *testing.T) {
		o := newOpen(t)

		require.NoError(t, o.ChangeStatus(order.Closed))
		assert.Equal(t, order.Closed, o.Status())
	})

	t.Run("closed is final", func(t *testing.T) {
		o := newOpen(t)
		require.NoError(t, o.Close())

		err := o.Place()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "Closed is not a valid status to place")
		assert.Equal(t, order.Closed, o.Status())
	})

	t.Run("cannot transition back to open", func(t *testing.T) {
		o := newOpen(t)

		err := o.ChangeStatus(order.Open)

		require.Error(t, err)
		assert.Equal(t, order.Open, o.Status())
	})
}
