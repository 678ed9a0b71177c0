package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wearly/supportbot/internal/intent"
	"github.com/wearly/supportbot/internal/services"
	"github.com/wearly/supportbot/internal/utils"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	UserID  string `json:"user_id"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id,omitempty"`
}

// Chat is the stateless endpoint: one message in, one templated reply out,
// nothing persisted.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Chat", "invalid request body", err))
		return
	}

	reply, err := h.chat.HandleStateless(c.Request.Context(), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Response:  reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UserID:    req.UserID,
	})
}

type ConversationRequest struct {
	Message        string `json:"message" binding:"required"`
	UserID         string `json:"user_id" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

type ConversationResponse struct {
	Response           string `json:"response"`
	ConversationID     string `json:"conversation_id"`
	Timestamp          string `json:"timestamp"`
	UserID             string `json:"user_id"`
	NeedsClarification bool   `json:"needs_clarification"`
}

// ConversationChat is the stateful endpoint: the turn is classified,
// answered and appended to the conversation.
func (h *ChatHandler) ConversationChat(c *gin.Context) {
	var req ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.ConversationChat", "invalid request body", err))
		return
	}

	turn, err := h.chat.HandleTurn(c.Request.Context(), req.UserID, req.ConversationID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ConversationResponse{
		Response:           turn.Reply,
		ConversationID:     turn.ConversationID,
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		UserID:             req.UserID,
		NeedsClarification: turn.NeedsClarification,
	})
}

// Capabilities describes what the assistant can do, for client onboarding.
func (h *ChatHandler) Capabilities(c *gin.Context) {
	supported := make([]string, 0, len(intent.Labels))
	for _, l := range intent.Labels {
		supported = append(supported, string(l))
	}

	c.JSON(http.StatusOK, gin.H{
		"capabilities": []string{
			"Product search and recommendations",
			"Product information and pricing",
			"Order tracking and status",
			"Return and refund policies",
			"Shipping information",
			"General customer support",
			"Conversation history and context",
			"LLM-powered intelligent responses",
		},
		"supported_intents": supported,
		"model_loaded":      h.chat.ModelLoaded(),
		"example_queries": []string{
			"Hello",
			"Search for jeans",
			"What's the price of product 123?",
			"Track my order #456",
			"What's your return policy?",
			"How long does shipping take?",
		},
	})
}
