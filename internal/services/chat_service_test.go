package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wearly/supportbot/internal/intent"
	"github.com/wearly/supportbot/internal/models"
	pgrepo "github.com/wearly/supportbot/internal/repositories/postgres"
	"github.com/wearly/supportbot/internal/responder"
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

// newChatStack wires a chat service over sqlite with the rule-based
// classifier and no LLM provider.
func newChatStack(t *testing.T) (ChatService, ConversationService, pgrepo.MessageRepo) {
	t.Helper()
	db := testDB(t)

	userRepo := pgrepo.NewUserRepo(db)
	convRepo := pgrepo.NewConversationRepo(db)
	msgRepo := pgrepo.NewMessageRepo(db)
	catalogRepo := pgrepo.NewCatalogRepo(db)

	convService := NewConversationService(userRepo, convRepo, msgRepo)
	chat := NewChatService(
		intent.NewClassifier(nil, nil),
		responder.New(catalogRepo),
		nil,
		convService,
		msgRepo,
		catalogRepo,
		nil,
		nil,
	)
	return chat, convService, msgRepo
}

func TestHandleTurnFourTurnConversation(t *testing.T) {
	chat, convService, msgs := newChatStack(t)
	ctx := context.Background()

	turns := []struct {
		message string
		intent  intent.Label
	}{
		{"Hello!", intent.LabelGreeting},
		{"Search for jeans", intent.LabelProductSearch},
		{"How many t-shirts are in stock?", intent.LabelInventory},
		{"Goodbye", intent.LabelGoodbye},
	}

	conversationID := ""
	for _, turn := range turns {
		result, err := chat.HandleTurn(ctx, "user-1", conversationID, turn.message)
		require.NoError(t, err)
		require.NotEmpty(t, result.ConversationID)

		if conversationID == "" {
			conversationID = result.ConversationID
		} else {
			assert.Equal(t, conversationID, result.ConversationID, "conversation id must stay stable")
		}
		assert.Equal(t, turn.intent, result.Intent)
		assert.Nil(t, result.Confidence, "rule path reports no confidence")
		assert.False(t, result.NeedsClarification)
		assert.Equal(t, responder.Fallback(turn.intent), result.Reply)
	}

	history, err := convService.History(ctx, conversationID, 50)
	require.NoError(t, err)
	require.Len(t, history, 8)
	for i, turn := range turns {
		userMsg := history[2*i]
		assistantMsg := history[2*i+1]

		assert.Equal(t, models.RoleUser, userMsg.Role)
		assert.Equal(t, turn.message, userMsg.Content)
		require.NotNil(t, userMsg.Intent)
		assert.Equal(t, string(turn.intent), *userMsg.Intent)
		assert.Equal(t, models.RoleAssistant, assistantMsg.Role)
	}

	count, err := msgs.Count(ctx, conversationID)
	require.NoError(t, err)
	assert.EqualValues(t, 8, count)

	summaries, err := convService.ListByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, conversationID, summaries[0].ConversationID)
	assert.Equal(t, 8, summaries[0].MessageCount)
}

func TestHandleTurnUnknownConversation(t *testing.T) {
	chat, _, _ := newChatStack(t)

	_, err := chat.HandleTurn(context.Background(), "user-1", "conv_doesnotexist", "hello")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound), "got %v", err)
}

func TestHandleTurnClosedConversation(t *testing.T) {
	chat, convService, _ := newChatStack(t)
	ctx := context.Background()

	result, err := chat.HandleTurn(ctx, "user-1", "", "hello")
	require.NoError(t, err)
	require.NoError(t, convService.Close(ctx, result.ConversationID))

	_, err = chat.HandleTurn(ctx, "user-1", result.ConversationID, "are you still there?")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound), "got %v", err)
}

func TestHandleTurnValidation(t *testing.T) {
	chat, _, _ := newChatStack(t)
	ctx := context.Background()

	_, err := chat.HandleTurn(ctx, "user-1", "", "   ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = chat.HandleTurn(ctx, "", "", "hello")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestHandleStateless(t *testing.T) {
	chat, _, _ := newChatStack(t)
	ctx := context.Background()

	reply, err := chat.HandleStateless(ctx, "Hello!")
	require.NoError(t, err)
	assert.Contains(t, responder.GreetingTemplates, reply)

	reply, err = chat.HandleStateless(ctx, "??")
	require.NoError(t, err)
	assert.Contains(t, reply, "not sure I understood")

	_, err = chat.HandleStateless(ctx, "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestDefaultClarificationDetector(t *testing.T) {
	assert.True(t, DefaultClarificationDetector(
		"I'd be happy to help! To provide you with the best assistance, I need a bit more information: what size?"))
	assert.True(t, DefaultClarificationDetector("Could you please clarify which order you mean?"))
	assert.False(t, DefaultClarificationDetector("Your order #456 has shipped."))
}

func TestWithContinuity(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleUser, Content: "show me some products"},
		{Role: models.RoleAssistant, Content: "here are products"},
	}

	got := withContinuity("Here you go.", history, intent.LabelProductSearch)
	assert.Contains(t, got, "Based on our previous conversation about products")

	got = withContinuity("Here you go.", history, intent.LabelInventory)
	assert.Equal(t, "Here you go.", got, "no stock keyword in previous turn")

	got = withContinuity("Here you go.", nil, intent.LabelProductSearch)
	assert.Equal(t, "Here you go.", got, "no history")
}
