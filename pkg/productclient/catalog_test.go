package productclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	lamp := Product{ID: "a", Name: "Lamp", Price: 19.99}
	desk := Product{ID: "b", Name: "Desk", Price: 120}

	t.Run("add does not modify the receiver", func(t *testing.T) {
		empty := NewCatalog()
		one := empty.Add(lamp)
		two := one.Add(desk)

		assert.Equal(t, 0, empty.Len())
		assert.Equal(t, []Product{lamp}, one.Products())
		assert.Equal(t, []Product{lamp, desk}, two.Products())
	})

	t.Run("replace keeps position", func(t *testing.T) {
		c := NewCatalog(lamp, desk)
		cheaper := lamp
		cheaper.Price = 9.99

		replaced := c.Replace("a", cheaper)

		assert.Equal(t, []Product{cheaper, desk}, replaced.Products())
		assert.Equal(t, []Product{lamp, desk}, c.Products())
	})

	t.Run("replace of unknown id is a no-op", func(t *testing.T) {
		c := NewCatalog(lamp)

		assert.Equal(t, c.Products(), c.Replace("zzz", desk).Products())
	})

	t.Run("remove", func(t *testing.T) {
		c := NewCatalog(lamp, desk)

		removed := c.Remove("a")

		assert.Equal(t, []Product{desk}, removed.Products())
		assert.Equal(t, 2, c.Len())
		_, ok := removed.Get("a")
		assert.False(t, ok)
	})

	t.Run("with products copies the input", func(t *testing.T) {
		input := []Product{lamp}
		c := NewCatalog().WithProducts(input)
		input[0].Name = "changed"

		got, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "Lamp", got.Name)
	})

	t.Run("products returns a copy", func(t *testing.T) {
		c := NewCatalog(lamp)
		products := c.Products()
		products[0].Name = "changed"

		got, _ := c.Get("a")
		assert.Equal(t, "Lamp", got.Name)
	})
}
