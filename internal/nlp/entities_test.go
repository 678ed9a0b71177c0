package nlp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wearly/supportbot/internal/models"
)

func TestExtractEntities(t *testing.T) {
	t.Run("order id", func(t *testing.T) {
		for _, msg := range []string{
			"Track my order #456 please",
			"order number 456",
			"what happened to order id 456",
		} {
			e := ExtractEntities(msg)
			require.NotNil(t, e.OrderID, "message %q", msg)
			assert.Equal(t, 456, *e.OrderID, "message %q", msg)
			assert.Nil(t, e.ProductID, "message %q", msg)
		}
	})

	t.Run("product id", func(t *testing.T) {
		e := ExtractEntities("What's the price of product 123?")
		require.NotNil(t, e.ProductID)
		assert.Equal(t, 123, *e.ProductID)
	})

	t.Run("user id", func(t *testing.T) {
		e := ExtractEntities("my user id 42")
		require.NotNil(t, e.UserID)
		assert.Equal(t, 42, *e.UserID)
	})

	t.Run("quantity", func(t *testing.T) {
		for msg, want := range map[string]int{
			"are there 5 items left?": 5,
			"quantity of 7":           7,
		} {
			e := ExtractEntities(msg)
			require.NotNil(t, e.Quantity, "message %q", msg)
			assert.Equal(t, want, *e.Quantity, "message %q", msg)
		}
	})

	t.Run("garment type first match wins", func(t *testing.T) {
		e := ExtractEntities("do you sell t-shirts?")
		require.NotNil(t, e.ProductType)
		assert.Equal(t, "t-shirt", *e.ProductType)
	})

	t.Run("nothing extracted", func(t *testing.T) {
		e := ExtractEntities("hello there")
		assert.True(t, e.IsEmpty())
	})

	t.Run("multiple kinds in one message", func(t *testing.T) {
		e := ExtractEntities("order #7 for user 9, about product 33")
		require.NotNil(t, e.OrderID)
		require.NotNil(t, e.UserID)
		require.NotNil(t, e.ProductID)
		assert.Equal(t, 7, *e.OrderID)
		assert.Equal(t, 9, *e.UserID)
		assert.Equal(t, 33, *e.ProductID)
	})
}

type stubCatalog struct {
	products []models.Product
	err      error
}

func (s *stubCatalog) ListProducts(_ context.Context, _ int) ([]models.Product, error) {
	return s.products, s.err
}

func TestExtractCatalogEntities(t *testing.T) {
	catalog := &stubCatalog{products: []models.Product{
		{ID: 10, Name: "Classic Denim Jacket"},
		{ID: 11, Name: "Slim Fit Jeans"},
	}}

	t.Run("resolves product name and id", func(t *testing.T) {
		e := ExtractCatalogEntities(context.Background(), "is the slim fit jeans in stock?", catalog)
		require.NotNil(t, e.ProductName)
		require.NotNil(t, e.ProductID)
		assert.Equal(t, "Slim Fit Jeans", *e.ProductName)
		assert.Equal(t, 11, *e.ProductID)
	})

	t.Run("catalog error keeps pattern entities", func(t *testing.T) {
		broken := &stubCatalog{err: errors.New("db down")}
		e := ExtractCatalogEntities(context.Background(), "track order #456", broken)
		require.NotNil(t, e.OrderID)
		assert.Equal(t, 456, *e.OrderID)
		assert.Nil(t, e.ProductName)
	})
}
