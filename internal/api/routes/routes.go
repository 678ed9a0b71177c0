package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wearly/supportbot/internal/api/handlers"
	"github.com/wearly/supportbot/internal/api/middleware"
)

type Deps struct {
	Log          *logrus.Logger
	Chat         *handlers.ChatHandler
	Catalog      *handlers.CatalogHandler
	Conversation *handlers.ConversationHandler
	Admin        *handlers.AdminHandler
	WS           *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(cors.Default())

	// Liveness
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "E-commerce Customer Support Chatbot API", "status": "running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Chat
	r.POST("/chat", d.Chat.Chat)
	r.POST("/api/chat", d.Chat.ConversationChat)
	r.GET("/ws/chat", d.WS.ChatWS)
	r.GET("/chatbot/capabilities", d.Chat.Capabilities)

	// Catalog
	r.GET("/products", d.Catalog.ListProducts)
	r.GET("/products/search", d.Catalog.SearchProducts)
	r.GET("/products/popular", d.Catalog.PopularProducts)
	r.GET("/products/:product_id", d.Catalog.GetProduct)
	r.GET("/orders/user/:user_id", d.Catalog.UserOrders)
	r.GET("/orders/:order_id/items", d.Catalog.OrderItems)
	r.GET("/categories", d.Catalog.Categories)
	r.GET("/brands", d.Catalog.Brands)

	// Conversations
	r.GET("/api/conversations/user/:user_id", d.Conversation.ListByUser)
	r.GET("/api/conversations/:conversation_id/history", d.Conversation.History)

	// Management (JWT, admin role)
	admin := r.Group("/")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())

	admin.POST("/api/conversations/:conversation_id/close", d.Conversation.Close)
	admin.DELETE("/api/conversations/:conversation_id", d.Conversation.Delete)
	admin.POST("/admin/train", d.Admin.Train)
	admin.GET("/admin/train/runs", d.Admin.TrainingRuns)
}
