package cart

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(itemID string, price int64, qty int, c *Customization) Line {
	return Line{
		ItemID:        itemID,
		Name:          "Item " + itemID,
		UnitPrice:     price,
		Quantity:      qty,
		Customization: c,
	}
}

func TestAddMergesIdenticalLines(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(line("biryani", 350, 1, nil)))
	require.NoError(t, c.Add(line("biryani", 350, 2, nil)))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, c.Count())
}

func TestAddKeepsDistinctCustomizationsApart(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(line("biryani", 350, 1, &Customization{SpiceLevel: "Hot"})))
	require.NoError(t, c.Add(line("biryani", 350, 1, &Customization{SpiceLevel: "Mild"})))

	assert.Len(t, c.Lines(), 2)
	assert.Equal(t, 2, c.Count())
}

func TestAddMergeIgnoresAddOnOrder(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(line("biryani", 350, 1, &Customization{
		SpiceLevel: "Hot",
		AddOns:     []string{"Raita", "Extra Chicken"},
	})))
	require.NoError(t, c.Add(line("biryani", 350, 1, &Customization{
		SpiceLevel: "Hot",
		AddOns:     []string{"Extra Chicken", "Raita"},
	})))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddNilAndEmptyCustomizationAreDistinct(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(line("biryani", 350, 1, nil)))
	require.NoError(t, c.Add(line("biryani", 350, 1, &Customization{})))

	assert.Len(t, c.Lines(), 2)
}

func TestAddQuantityRules(t *testing.T) {
	t.Run("zero defaults to one", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(line("biryani", 350, 0, nil)))
		assert.Equal(t, 1, c.Count())
	})

	t.Run("negative rejected", func(t *testing.T) {
		c := New()
		err := c.Add(line("biryani", 350, -1, nil))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Empty(t, c.Lines())
	})
}

func TestUnitPriceFrozenAtAddTime(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(line("biryani", 350, 1, nil)))
	// Same item again at a changed catalog price still merges into the
	// original line at its original price.
	require.NoError(t, c.Add(line("biryani", 425, 1, nil)))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(350), lines[0].UnitPrice)
	assert.Equal(t, int64(700), c.Total())
}

func TestRemove(t *testing.T) {
	t.Run("removes every variant of the item", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(line("biryani", 350, 1, &Customization{SpiceLevel: "Hot"})))
		require.NoError(t, c.Add(line("biryani", 350, 1, &Customization{SpiceLevel: "Mild"})))
		require.NoError(t, c.Add(line("kebab", 280, 1, nil)))

		c.Remove("biryani")

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "kebab", lines[0].ItemID)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(line("kebab", 280, 1, nil)))
		c.Remove("missing")
		assert.Len(t, c.Lines(), 1)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets quantity", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(line("kebab", 280, 1, nil)))
		require.NoError(t, c.UpdateQuantity("kebab", 4))
		assert.Equal(t, 4, c.Count())
	})

	t.Run("zero removes the item", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(line("kebab", 280, 2, nil)))
		require.NoError(t, c.UpdateQuantity("kebab", 0))
		assert.Empty(t, c.Lines())
	})

	t.Run("negative rejected and cart untouched", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(line("kebab", 280, 2, nil)))
		err := c.UpdateQuantity("kebab", -3)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 2, c.Count())
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		c := New()
		require.NoError(t, c.UpdateQuantity("missing", 5))
		assert.Empty(t, c.Lines())
	})
}

func TestClear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(line("biryani", 350, 2, nil)))
	require.NoError(t, c.Add(line("kebab", 280, 1, nil)))

	c.Clear()

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, int64(0), c.Total())
}

func TestCountAndTotal(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(line("biryani", 350, 2, nil)))
	require.NoError(t, c.Add(line("chai", 50, 3, nil)))

	assert.Equal(t, 5, c.Count())
	assert.Equal(t, int64(2*350+3*50), c.Total())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(line("biryani", 350, 1, nil)))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Count())
}

func TestConcurrentAdds(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.Add(line(fmt.Sprintf("item-%d", i%5), 100, 1, nil))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Count())
	assert.Len(t, c.Lines(), 5)
}
