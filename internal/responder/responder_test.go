package responder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wearly/supportbot/internal/intent"
	"github.com/wearly/supportbot/internal/models"
	"github.com/wearly/supportbot/internal/nlp"
)

type fakeCatalog struct {
	products  []models.Product
	inventory map[int]models.InventoryStatus
	orders    []models.OrderSummary
	err       error
}

func (f *fakeCatalog) SearchProducts(_ context.Context, term string, limit int) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.products) > limit {
		return f.products[:limit], nil
	}
	return f.products, nil
}

func (f *fakeCatalog) GetProductByID(_ context.Context, id int) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCatalog) GetInventoryStatus(_ context.Context, productID int) (models.InventoryStatus, error) {
	return f.inventory[productID], f.err
}

func (f *fakeCatalog) GetUserOrders(_ context.Context, _ int) ([]models.OrderSummary, error) {
	return f.orders, f.err
}

func intPtr(n int) *int { return &n }

func TestGenerateGreetingUsesTemplateSet(t *testing.T) {
	r := New(&fakeCatalog{})

	reply := r.Generate(context.Background(), intent.LabelGreeting, nlp.Entities{}, "Hello!")
	assert.Contains(t, GreetingTemplates, reply)

	reply = r.Generate(context.Background(), intent.LabelGoodbye, nlp.Entities{}, "bye")
	assert.Contains(t, GoodbyeTemplates, reply)
}

func TestGenerateProductSearch(t *testing.T) {
	catalog := &fakeCatalog{products: []models.Product{
		{ID: 1, Name: "Slim Fit Jeans", Brand: "Levi's", Category: "Jeans", RetailPrice: 59.99},
		{ID: 2, Name: "Relaxed Jeans", Brand: "Wrangler", Category: "Jeans", RetailPrice: 39.99},
	}}
	r := New(catalog)

	reply := r.Generate(context.Background(), intent.LabelProductSearch, nlp.Entities{}, "search for jeans")
	assert.Contains(t, reply, "Here are some products matching 'jeans'")
	assert.Contains(t, reply, "Slim Fit Jeans by Levi's")
	assert.Contains(t, reply, "$59.99")

	t.Run("no matches", func(t *testing.T) {
		empty := New(&fakeCatalog{})
		reply := empty.Generate(context.Background(), intent.LabelProductSearch, nlp.Entities{}, "search for unicorns")
		assert.Contains(t, reply, "couldn't find any products matching 'unicorns'")
	})

	t.Run("catalog error degrades to not found", func(t *testing.T) {
		broken := New(&fakeCatalog{err: errors.New("db down")})
		reply := broken.Generate(context.Background(), intent.LabelProductSearch, nlp.Entities{}, "find jeans")
		assert.Contains(t, reply, "couldn't find any products")
	})
}

func TestGenerateProductInfo(t *testing.T) {
	catalog := &fakeCatalog{
		products: []models.Product{
			{ID: 123, Name: "Classic Tee", Brand: "Hanes", Category: "Tops", Department: "Men", RetailPrice: 12.50},
		},
		inventory: map[int]models.InventoryStatus{
			123: {TotalItems: 10, AvailableItems: 4, SoldItems: 6},
		},
	}
	r := New(catalog)

	reply := r.Generate(context.Background(), intent.LabelProductInfo, nlp.Entities{ProductID: intPtr(123)}, "tell me about product 123")
	assert.Contains(t, reply, "Classic Tee")
	assert.Contains(t, reply, "Available: 4 items")
	assert.Contains(t, reply, "in stock")

	t.Run("out of stock", func(t *testing.T) {
		catalog.inventory[123] = models.InventoryStatus{TotalItems: 10, SoldItems: 10}
		reply := r.Generate(context.Background(), intent.LabelProductInfo, nlp.Entities{ProductID: intPtr(123)}, "product 123")
		assert.Contains(t, reply, "out of stock")
	})

	t.Run("no product id asks which product", func(t *testing.T) {
		reply := r.Generate(context.Background(), intent.LabelProductInfo, nlp.Entities{}, "tell me more")
		assert.Contains(t, reply, "which product you're interested in")
	})
}

func TestGenerateOrderStatus(t *testing.T) {
	t.Run("order id asks for verification", func(t *testing.T) {
		r := New(&fakeCatalog{})
		reply := r.Generate(context.Background(), intent.LabelOrderStatus, nlp.Entities{OrderID: intPtr(456)}, "track my order #456")
		assert.Equal(t, "I can see order #456. Let me check the status for you. Please provide your user ID for verification.", reply)
	})

	t.Run("user id lists recent orders", func(t *testing.T) {
		r := New(&fakeCatalog{orders: []models.OrderSummary{
			{OrderID: 1, UserID: 9, Status: "Shipped", ItemCount: 2},
			{OrderID: 2, UserID: 9, Status: "Complete", ItemCount: 1},
		}})
		reply := r.Generate(context.Background(), intent.LabelOrderStatus, nlp.Entities{UserID: intPtr(9)}, "orders for user 9")
		assert.Contains(t, reply, "Order #1: Shipped")
		assert.Contains(t, reply, "Order #2: Complete")
	})

	t.Run("neither id prompts for one", func(t *testing.T) {
		r := New(&fakeCatalog{})
		reply := r.Generate(context.Background(), intent.LabelOrderStatus, nlp.Entities{}, "where is my order")
		assert.Contains(t, reply, "order number or user ID")
	})
}

func TestGenerateInventory(t *testing.T) {
	catalog := &fakeCatalog{
		products: []models.Product{
			{ID: 5, Name: "Graphic Tshirt", Brand: "Uniqlo", RetailPrice: 19.99},
		},
		inventory: map[int]models.InventoryStatus{
			5: {TotalItems: 12, AvailableItems: 7, SoldItems: 5},
		},
	}
	r := New(catalog)

	reply := r.Generate(context.Background(), intent.LabelInventory, nlp.Entities{}, "how many tshirts are in stock?")
	assert.Contains(t, reply, "stock information for tshirt products")
	assert.Contains(t, reply, "Available: 7 items")
	assert.Contains(t, reply, "Total Stock: 12 items")

	t.Run("no garment in message prompts for one", func(t *testing.T) {
		reply := r.Generate(context.Background(), intent.LabelInventory, nlp.Entities{}, "check inventory")
		assert.Contains(t, reply, "specify what type of item")
	})
}

func TestGenerateStaticIntents(t *testing.T) {
	r := New(&fakeCatalog{})

	assert.Equal(t, returnPolicyText, r.Generate(context.Background(), intent.LabelReturnPolicy, nlp.Entities{}, "return policy"))
	assert.Equal(t, shippingInfoText, r.Generate(context.Background(), intent.LabelShipping, nlp.Entities{}, "shipping"))
	assert.Equal(t, unknownText, r.Generate(context.Background(), intent.LabelUnknown, nlp.Entities{}, "??"))
	assert.Contains(t, HelpTemplates, r.Generate(context.Background(), intent.LabelHelp, nlp.Entities{}, "help"))
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"blue jeans"}, SearchTerms("Search for blue jeans"))
	assert.Equal(t, []string{"sneakers"}, SearchTerms("show me sneakers"))
	assert.Equal(t, []string{"want", "something", "nice"}, SearchTerms("I want something nice"))
	assert.Equal(t, []string{"the a an"}, SearchTerms("The a an"))
}

func TestFallback(t *testing.T) {
	assert.Equal(t, fallbackReplies[intent.LabelGreeting], Fallback(intent.LabelGreeting))
	assert.Contains(t, Fallback(intent.LabelUnknown), "I'm here to help")
}
