package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wearly/supportbot/internal/services"
)

type ConversationHandler struct {
	convos services.ConversationService
}

func NewConversationHandler(convos services.ConversationService) *ConversationHandler {
	return &ConversationHandler{convos: convos}
}

func (h *ConversationHandler) ListByUser(c *gin.Context) {
	userID := c.Param("user_id")

	summaries, err := h.convos.ListByUser(c.Request.Context(), userID, queryLimit(c, 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries, "count": len(summaries)})
}

func (h *ConversationHandler) History(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	messages, err := h.convos.History(c.Request.Context(), conversationID, queryLimit(c, 50))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conversationID,
		"messages":        messages,
		"count":           len(messages),
	})
}

func (h *ConversationHandler) Close(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	if err := h.convos.Close(c.Request.Context(), conversationID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation_id": conversationID, "is_active": false})
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	if err := h.convos.Delete(c.Request.Context(), conversationID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation_id": conversationID, "deleted": true})
}
