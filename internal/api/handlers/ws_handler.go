package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/wearly/supportbot/internal/services"
	"github.com/wearly/supportbot/internal/utils"
)

type WSHandler struct {
	chat     services.ChatService
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(chat services.ChatService, log *logrus.Logger) *WSHandler {
	if log == nil {
		log = logrus.New()
	}
	return &WSHandler{
		chat: chat,
		log:  log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Message string `json:"message"`
}

type wsServerMsg struct {
	Response           string `json:"response,omitempty"`
	ConversationID     string `json:"conversation_id,omitempty"`
	NeedsClarification bool   `json:"needs_clarification"`
	Error              string `json:"error,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

// ChatWS streams one reply frame per client message frame. The conversation
// id is established on the first turn and reused for the life of the socket.
func (h *WSHandler) ChatWS(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.ChatWS", "missing user_id", nil))
		return
	}
	conversationID := c.Query("conversation_id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var in wsClientMsg
		if err := json.Unmarshal(data, &in); err != nil || in.Message == "" {
			if werr := wc.writeJSON(wsServerMsg{Error: "expected {\"message\": ...}"}); werr != nil {
				return
			}
			continue
		}

		turn, err := h.chat.HandleTurn(ctx, userID, conversationID, in.Message)
		if err != nil {
			h.log.WithError(err).WithField("user_id", userID).Warn("ws turn failed")
			if werr := wc.writeJSON(wsServerMsg{Error: "error processing message"}); werr != nil {
				return
			}
			continue
		}
		conversationID = turn.ConversationID

		if werr := wc.writeJSON(wsServerMsg{
			Response:           turn.Reply,
			ConversationID:     turn.ConversationID,
			NeedsClarification: turn.NeedsClarification,
		}); werr != nil {
			return
		}
	}
}
