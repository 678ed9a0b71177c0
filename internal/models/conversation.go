package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatUser is the owner of conversations. Identity arrives from the caller as an
// opaque user_id; rows are created lazily on first message.
type ChatUser struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"-"`
	UserID    string    `gorm:"column:user_id;type:varchar(50);uniqueIndex;not null" json:"user_id"`
	Username  string    `gorm:"column:username;type:varchar(100)" json:"username,omitempty"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Conversations []Conversation `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ChatUser) TableName() string { return "chat_users" }

type Conversation struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"-"`
	ConversationID string    `gorm:"column:conversation_id;type:varchar(50);uniqueIndex;not null" json:"conversation_id"`
	UserID         string    `gorm:"column:user_id;type:varchar(50);index;not null" json:"user_id"`
	Title          string    `gorm:"column:title;type:varchar(255)" json:"title"`
	IsActive       bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`

	// A conversation exclusively owns its messages; hard delete cascades.
	Messages []Message `gorm:"foreignKey:ConversationID;references:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Conversation) TableName() string { return "conversations" }

type Message struct {
	ID             uint           `gorm:"column:id;primaryKey" json:"-"`
	ConversationID string         `gorm:"column:conversation_id;type:varchar(50);index;not null" json:"conversation_id"`
	MessageID      string         `gorm:"column:message_id;type:varchar(50);uniqueIndex;not null" json:"message_id"`
	Role           string         `gorm:"column:role;type:varchar(20);not null" json:"role"` // "user" | "assistant"
	Content        string         `gorm:"column:content;type:text;not null" json:"content"`
	Intent         *string        `gorm:"column:intent;type:varchar(50)" json:"intent,omitempty"`
	Confidence     *float64       `gorm:"column:confidence" json:"confidence,omitempty"` // [0,1], statistical path only
	Entities       datatypes.JSON `gorm:"column:entities" json:"entities,omitempty"`
	CreatedAt      time.Time      `gorm:"column:created_at;index" json:"created_at"`
}

func (Message) TableName() string { return "messages" }

// ConversationSummary is the listing projection for a conversation.
type ConversationSummary struct {
	ConversationID  string     `json:"conversation_id"`
	Title           string     `json:"title"`
	UserID          string     `json:"user_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	IsActive        bool       `json:"is_active"`
	MessageCount    int        `json:"message_count"`
	LastMessage     *string    `json:"last_message,omitempty"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty"`
}

func NewConversationID() string {
	return "conv_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func NewMessageID() string {
	return "msg_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
