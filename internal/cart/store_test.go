package cart_test

import (
	"sync"
	"testing"

	"github.com/dvalverde/pos-companion/internal/cart"
	appErrors "github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price float64, stock int) models.Product {
	return models.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    price,
		Quantity: stock,
	}
}

func TestAddItem(t *testing.T) {
	t.Run("Success - New Item Clamped To Stock", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()

		// Act
		err := store.AddItem(testProduct("p1", 10, 3), 5)

		// Assert
		require.NoError(t, err)
		item, ok := store.Item("p1")
		require.True(t, ok)
		assert.Equal(t, 3, item.Quantity)
		assert.Equal(t, 3, item.AvailableStock)
		assert.InDelta(t, 30.0, store.Total(), 1e-9)
	})

	t.Run("Success - Merge On Add Within Stock", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 5), 2))

		// Act
		err := store.AddItem(testProduct("p1", 10, 5), 2)

		// Assert
		require.NoError(t, err)
		item, _ := store.Item("p1")
		assert.Equal(t, 4, item.Quantity)
		assert.Equal(t, 1, store.Len(), "merge must not create a second line")
	})

	t.Run("Success - Merge Clamps At Snapshotted Stock", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 5), 4))

		// Act: the catalog value now claims more stock, the snapshot wins
		err := store.AddItem(testProduct("p1", 10, 50), 4)

		// Assert
		require.NoError(t, err)
		item, _ := store.Item("p1")
		assert.Equal(t, 5, item.Quantity)
		assert.Equal(t, 5, item.AvailableStock)
	})

	t.Run("No-op - Non-Positive Quantity", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()

		// Act
		require.NoError(t, store.AddItem(testProduct("p1", 10, 3), 0))
		require.NoError(t, store.AddItem(testProduct("p1", 10, 3), -2))

		// Assert
		assert.Equal(t, 0, store.Len())
	})

	t.Run("No-op - Out Of Stock Product", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()

		// Act
		err := store.AddItem(testProduct("p1", 10, 0), 2)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Failure - Malformed Product", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()

		// Act
		err := store.AddItem(models.Product{Price: 10, Quantity: 3}, 1)

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, 0, store.Len())
	})
}

func TestRemove(t *testing.T) {
	t.Run("Removes Existing Item", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 3), 1))

		// Act
		store.Remove("p1")

		// Assert
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Idempotent - Double Remove", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 3), 1))

		// Act
		store.Remove("p1")
		store.Remove("p1")

		// Assert
		_, ok := store.Item("p1")
		assert.False(t, ok)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Sets Quantity Within Stock", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 5), 1))

		// Act
		store.UpdateQuantity("p1", 4)

		// Assert
		item, _ := store.Item("p1")
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("Clamps Above Stock", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 5), 1))

		// Act
		store.UpdateQuantity("p1", 99)

		// Assert
		item, _ := store.Item("p1")
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("Zero Removes The Line", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 5), 2))

		// Act
		store.UpdateQuantity("p1", 0)

		// Assert
		_, ok := store.Item("p1")
		assert.False(t, ok)
	})

	t.Run("Negative Removes The Line", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 5), 2))

		// Act
		store.UpdateQuantity("p1", -3)

		// Assert
		_, ok := store.Item("p1")
		assert.False(t, ok)
	})

	t.Run("No-op - Unknown Product", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 5), 2))

		// Act
		store.UpdateQuantity("missing", 3)

		// Assert
		item, _ := store.Item("p1")
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, 1, store.Len())
	})
}

func TestTotal(t *testing.T) {
	t.Run("Recomputed On Every Read", func(t *testing.T) {
		// Arrange
		store := cart.NewStore()
		require.NoError(t, store.AddItem(testProduct("p1", 10, 10), 2))
		require.NoError(t, store.AddItem(testProduct("p2", 2.5, 10), 4))
		assert.InDelta(t, 30.0, store.Total(), 1e-9)

		// Act
		store.UpdateQuantity("p1", 1)
		store.Remove("p2")

		// Assert
		assert.InDelta(t, 10.0, store.Total(), 1e-9)
	})

	t.Run("Empty Cart", func(t *testing.T) {
		store := cart.NewStore()
		assert.Zero(t, store.Total())
	})
}

func TestItemsOrder(t *testing.T) {
	// Arrange
	store := cart.NewStore()
	require.NoError(t, store.AddItem(testProduct("p1", 1, 9), 1))
	require.NoError(t, store.AddItem(testProduct("p2", 2, 9), 1))
	require.NoError(t, store.AddItem(testProduct("p3", 3, 9), 1))
	store.Remove("p2")
	require.NoError(t, store.AddItem(testProduct("p2", 2, 9), 1))

	// Act
	items := store.Items()

	// Assert: insertion order, re-added items go to the back
	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "p3", items[1].ProductID)
	assert.Equal(t, "p2", items[2].ProductID)
}

func TestClearAndClient(t *testing.T) {
	// Arrange
	store := cart.NewStore()
	require.NoError(t, store.AddItem(testProduct("p1", 10, 3), 1))
	store.SetSelectedClient("client-1")

	// Act
	store.Clear()

	// Assert: clearing the cart does not touch the client selection
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Items())
	assert.Equal(t, "client-1", store.SelectedClient())

	store.SetSelectedClient("")
	assert.Empty(t, store.SelectedClient())
}

func TestConcurrentMutations(t *testing.T) {
	// Arrange: mutations and reads arrive from separate goroutines, as they
	// do when a logout races in-flight cart requests. The race detector is
	// the real assertion here.
	store := cart.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(4)

		go func() {
			defer wg.Done()
			_ = store.AddItem(testProduct("p1", 10, 100), 1)
		}()
		go func() {
			defer wg.Done()
			store.UpdateQuantity("p1", 2)
		}()
		go func() {
			defer wg.Done()
			store.Clear()
			store.SetSelectedClient("")
		}()
		go func() {
			defer wg.Done()
			_ = store.Items()
			_ = store.Total()
			_ = store.SelectedClient()
		}()
	}
	wg.Wait()

	// Assert: the store is still coherent after the dust settles
	require.NoError(t, store.AddItem(testProduct("p2", 5, 10), 2))
	item, ok := store.Item("p2")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
}

func TestSaleItems(t *testing.T) {
	// Arrange
	store := cart.NewStore()
	require.NoError(t, store.AddItem(testProduct("p1", 10, 5), 2))
	require.NoError(t, store.AddItem(testProduct("p2", 4, 5), 3))

	// Act
	items := store.SaleItems()

	// Assert
	require.Len(t, items, 2)
	assert.Equal(t, models.SaleItem{ProductID: "p1", Quantity: 2, Price: 10}, items[0])
	assert.Equal(t, models.SaleItem{ProductID: "p2", Quantity: 3, Price: 4}, items[1])
}
