package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wearly/supportbot/internal/models"
	"github.com/wearly/supportbot/internal/utils"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ChatUser{},
		&models.Conversation{},
		&models.Message{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
	))
	return db
}

func seedConversation(t *testing.T, db *gorm.DB, userID string) *models.Conversation {
	t.Helper()
	ctx := context.Background()

	_, err := NewUserRepo(db).CreateOrGet(ctx, userID, "", "")
	require.NoError(t, err)

	conv := &models.Conversation{
		ConversationID: models.NewConversationID(),
		UserID:         userID,
		Title:          "test conversation",
		IsActive:       true,
	}
	require.NoError(t, NewConversationRepo(db).Create(ctx, conv))
	return conv
}

func TestMessageRepoChronologicalRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	conv := seedConversation(t, db, "user-1")
	msgs := NewMessageRepo(db)

	contents := []string{"first", "second", "third"}
	for _, content := range contents {
		userMsg := &models.Message{
			ConversationID: conv.ConversationID,
			MessageID:      models.NewMessageID(),
			Role:           models.RoleUser,
			Content:        content,
		}
		assistantMsg := &models.Message{
			ConversationID: conv.ConversationID,
			MessageID:      models.NewMessageID(),
			Role:           models.RoleAssistant,
			Content:        "re: " + content,
		}
		require.NoError(t, msgs.AppendPair(ctx, conv.ConversationID, userMsg, assistantMsg))
	}

	rows, err := msgs.ListChronological(ctx, conv.ConversationID, 50)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	for i, content := range contents {
		assert.Equal(t, models.RoleUser, rows[2*i].Role)
		assert.Equal(t, content, rows[2*i].Content)
		assert.Equal(t, models.RoleAssistant, rows[2*i+1].Role)
		assert.Equal(t, "re: "+content, rows[2*i+1].Content)
	}

	count, err := msgs.Count(ctx, conv.ConversationID)
	require.NoError(t, err)
	assert.EqualValues(t, 6, count)

	last, err := msgs.Last(ctx, conv.ConversationID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "re: third", last.Content)
}

func TestMessageRepoLastEmptyConversation(t *testing.T) {
	db := testDB(t)
	conv := seedConversation(t, db, "user-1")

	last, err := NewMessageRepo(db).Last(context.Background(), conv.ConversationID)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestConversationRepoCloseAndDelete(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewConversationRepo(db)
	msgs := NewMessageRepo(db)
	conv := seedConversation(t, db, "user-1")

	require.NoError(t, msgs.AppendPair(ctx, conv.ConversationID,
		&models.Message{ConversationID: conv.ConversationID, MessageID: models.NewMessageID(), Role: models.RoleUser, Content: "hi"},
		&models.Message{ConversationID: conv.ConversationID, MessageID: models.NewMessageID(), Role: models.RoleAssistant, Content: "hello"},
	))

	require.NoError(t, repo.Close(ctx, conv.ConversationID))
	got, err := repo.GetByID(ctx, conv.ConversationID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, repo.Close(ctx, "conv_missing0000"), utils.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, conv.ConversationID))
	_, err = repo.GetByID(ctx, conv.ConversationID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	count, err := msgs.Count(ctx, conv.ConversationID)
	require.NoError(t, err)
	assert.Zero(t, count, "messages must be removed with their conversation")

	assert.ErrorIs(t, repo.Delete(ctx, "conv_missing0000"), utils.ErrNotFound)
}

func TestConversationRepoListActiveByUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewConversationRepo(db)

	first := seedConversation(t, db, "user-1")
	second := seedConversation(t, db, "user-1")
	closed := seedConversation(t, db, "user-1")
	require.NoError(t, repo.Close(ctx, closed.ConversationID))
	seedConversation(t, db, "user-2")

	// bump the first conversation so it becomes most recently updated
	require.NoError(t, repo.Touch(ctx, first.ConversationID, time.Now().UTC().Add(time.Hour)))

	rows, err := repo.ListActiveByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ConversationID, rows[0].ConversationID)
	assert.Equal(t, second.ConversationID, rows[1].ConversationID)
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now().UTC()
	soldAt := now.Add(-time.Hour)

	require.NoError(t, db.Create(&[]models.Product{
		{ID: 1, Name: "Slim Fit Jeans", Brand: "Levi's", Category: "Jeans", RetailPrice: 59.99},
		{ID: 2, Name: "Graphic Tshirt", Brand: "Uniqlo", Category: "Tops", RetailPrice: 19.99},
		{ID: 3, Name: "Relaxed Jeans", Brand: "Wrangler", Category: "Jeans", RetailPrice: 39.99},
	}).Error)
	require.NoError(t, db.Create(&[]models.InventoryItem{
		{ID: 1, ProductID: 1, CreatedAt: now},
		{ID: 2, ProductID: 1, CreatedAt: now},
		{ID: 3, ProductID: 1, CreatedAt: now, SoldAt: &soldAt},
	}).Error)
	require.NoError(t, db.Create(&models.Order{OrderID: 100, UserID: 9, Status: "Shipped", CreatedAt: now}).Error)
	require.NoError(t, db.Create(&[]models.OrderItem{
		{ID: 1, OrderID: 100, UserID: 9, ProductID: 1, Status: "Shipped", SalePrice: 49.99},
		{ID: 2, OrderID: 100, UserID: 9, ProductID: 2, Status: "Shipped", SalePrice: 19.99},
	}).Error)
}

func TestCatalogRepoSearchAndInventory(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	seedCatalog(t, db)
	repo := NewCatalogRepo(db)

	products, err := repo.SearchProducts(ctx, "JEANS", 10)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	status, err := repo.GetInventoryStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.InventoryStatus{TotalItems: 3, AvailableItems: 2, SoldItems: 1}, status)

	_, err = repo.GetProductByID(ctx, 999)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCatalogRepoOrdersAndListings(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	seedCatalog(t, db)
	repo := NewCatalogRepo(db)

	orders, err := repo.GetUserOrders(ctx, 9)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 100, orders[0].OrderID)
	assert.Equal(t, 2, orders[0].ItemCount)

	items, err := repo.GetOrderItems(ctx, 100)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Slim Fit Jeans", items[0].ProductName)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jeans", "Tops"}, categories)

	brands, err := repo.ListBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Levi's", "Uniqlo", "Wrangler"}, brands)

	popular, err := repo.GetPopularProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, 1, popular[0].SalesCount)
}
