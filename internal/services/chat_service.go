package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/wearly/supportbot/internal/intent"
	"github.com/wearly/supportbot/internal/models"
	"github.com/wearly/supportbot/internal/nlp"
	"github.com/wearly/supportbot/internal/providers/llm"
	pgrepo "github.com/wearly/supportbot/internal/repositories/postgres"
	"github.com/wearly/supportbot/internal/responder"
	"github.com/wearly/supportbot/internal/utils"
)

const (
	// storedHistoryLimit bounds how many persisted messages one turn reads back.
	storedHistoryLimit = 50
	// llmHistoryWindow is how many of those are forwarded to the LLM.
	llmHistoryWindow = 5
)

// ClarificationDetector decides whether a generated reply is asking the
// customer for more information rather than answering.
type ClarificationDetector func(reply string) bool

var clarificationMarkers = []string{
	"i need a bit more information",
	"to provide you with the best assistance",
	"could you please clarify",
	"can you provide more details",
	"i need to know",
	"to help you better",
	"could you specify",
	"what exactly are you looking for",
}

// DefaultClarificationDetector matches the stock marker phrases the system
// prompt instructs the LLM to use when it needs clarification.
func DefaultClarificationDetector(reply string) bool {
	lower := strings.ToLower(reply)
	for _, marker := range clarificationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// TurnResult is the outcome of one conversational exchange.
type TurnResult struct {
	Reply              string
	ConversationID     string
	Intent             intent.Label
	Confidence         *float64
	NeedsClarification bool
}

type ChatService interface {
	// HandleTurn runs the full pipeline for one conversational message:
	// classify, extract, generate, persist. An empty conversationID starts a
	// new conversation; a closed or unknown one is rejected.
	HandleTurn(ctx context.Context, userID, conversationID, message string) (*TurnResult, error)
	// HandleStateless answers a single message with the deterministic
	// template pipeline and persists nothing.
	HandleStateless(ctx context.Context, message string) (string, error)
	// ModelLoaded reports whether the statistical classifier path is active.
	ModelLoaded() bool
}

type chatService struct {
	classifier *intent.Classifier
	responder  *responder.Responder
	provider   llm.Provider // nil disables the enrichment path
	convos     ConversationService
	msgs       pgrepo.MessageRepo
	catalog    pgrepo.CatalogRepo
	clarify    ClarificationDetector
	log        *logrus.Logger
}

func NewChatService(
	classifier *intent.Classifier,
	rsp *responder.Responder,
	provider llm.Provider,
	convos ConversationService,
	msgs pgrepo.MessageRepo,
	catalog pgrepo.CatalogRepo,
	clarify ClarificationDetector,
	log *logrus.Logger,
) ChatService {
	if clarify == nil {
		clarify = DefaultClarificationDetector
	}
	if log == nil {
		log = logrus.New()
	}
	return &chatService{
		classifier: classifier,
		responder:  rsp,
		provider:   provider,
		convos:     convos,
		msgs:       msgs,
		catalog:    catalog,
		clarify:    clarify,
		log:        log,
	}
}

func (s *chatService) ModelLoaded() bool { return s.classifier.ModelLoaded() }

func (s *chatService) HandleStateless(ctx context.Context, message string) (string, error) {
	const op = "ChatService.HandleStateless"

	if strings.TrimSpace(message) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}
	label := s.classifier.Classify(message)
	entities := nlp.ExtractCatalogEntities(ctx, message, s.catalog)
	return s.responder.Generate(ctx, label, entities, message), nil
}

func (s *chatService) HandleTurn(ctx context.Context, userID, conversationID, message string) (*TurnResult, error) {
	const op = "ChatService.HandleTurn"

	if strings.TrimSpace(message) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}
	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	conv, err := s.resolveConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	history, err := s.msgs.ListChronological(ctx, conv.ConversationID, storedHistoryLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load history", err)
	}

	label, confidence := s.classifier.ClassifyWithConfidence(message)
	entities := nlp.ExtractCatalogEntities(ctx, message, s.catalog)
	dbContext := s.databaseContext(ctx, label, entities, message)

	reply, needsClarification := s.generateReply(ctx, label, entities, dbContext, history, message)
	reply = withContinuity(reply, history, label)

	if err := s.persistTurn(ctx, conv.ConversationID, message, reply, label, confidence, entities); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist turn", err)
	}

	s.log.WithFields(logrus.Fields{
		"conversation_id":     conv.ConversationID,
		"user_id":             userID,
		"intent":              string(label),
		"needs_clarification": needsClarification,
	}).Info("handled chat turn")

	return &TurnResult{
		Reply:              reply,
		ConversationID:     conv.ConversationID,
		Intent:             label,
		Confidence:         confidence,
		NeedsClarification: needsClarification,
	}, nil
}

func (s *chatService) resolveConversation(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	const op = "ChatService.resolveConversation"

	if conversationID == "" {
		return s.convos.Create(ctx, userID, "")
	}
	conv, err := s.convos.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	// closed conversations are append-only history; new turns are refused
	if !conv.IsActive {
		return nil, utils.E(utils.CodeNotFound, op, "conversation is closed", nil)
	}
	return conv, nil
}

func (s *chatService) generateReply(ctx context.Context, label intent.Label, entities nlp.Entities, dbContext string, history []models.Message, message string) (string, bool) {
	if s.provider == nil || !s.provider.Available() {
		return responder.Fallback(label), false
	}

	system := buildSystemPrompt(label, entities, dbContext)
	window := history
	if len(window) > llmHistoryWindow {
		window = window[len(window)-llmHistoryWindow:]
	}
	llmHistory := make([]llm.Message, len(window))
	for i, m := range window {
		llmHistory[i] = llm.Message{Role: m.Role, Content: m.Content}
	}

	reply, err := s.provider.Complete(ctx, system, llmHistory, message)
	if err != nil {
		s.log.WithError(err).Warn("llm completion failed, using fallback reply")
		return responder.Fallback(label), false
	}
	return reply, s.clarify(reply)
}

func (s *chatService) databaseContext(ctx context.Context, label intent.Label, entities nlp.Entities, message string) string {
	switch label {
	case intent.LabelProductSearch:
		terms := responder.SearchTerms(message)
		if len(terms) == 0 {
			return ""
		}
		products, err := s.catalog.SearchProducts(ctx, terms[0], 3)
		if err != nil || len(products) == 0 {
			return ""
		}
		return fmt.Sprintf("Found %d products matching the query", len(products))
	case intent.LabelInventory:
		if entities.ProductType == nil {
			return ""
		}
		products, err := s.catalog.SearchProducts(ctx, *entities.ProductType, 3)
		if err != nil || len(products) == 0 {
			return ""
		}
		return fmt.Sprintf("Found inventory information for %d products", len(products))
	default:
		return ""
	}
}

func buildSystemPrompt(label intent.Label, entities nlp.Entities, dbContext string) string {
	entitiesJSON := "None"
	if !entities.IsEmpty() {
		if b, err := json.Marshal(entities); err == nil {
			entitiesJSON = string(b)
		}
	}

	return fmt.Sprintf(`You are an intelligent e-commerce customer support assistant. You help customers with product searches, order tracking, inventory queries, and general support.

Current Context:
- Detected Intent: %s
- Extracted Entities: %s
- Database Context: %s

Your capabilities:
1. Product Search: Help customers find products by category, brand, or description
2. Inventory Queries: Provide stock information and availability
3. Order Tracking: Help track orders and provide status updates
4. Return Policy: Explain return and refund policies
5. Shipping Information: Provide delivery and shipping details
6. General Support: Answer customer service questions

Guidelines:
- Be helpful, friendly, and professional
- If you need more information to help the customer, ask clarifying questions
- Provide specific, actionable information when possible
- If you don't have enough information, ask for clarification
- Keep responses concise but informative
- Always maintain a helpful and positive tone

If you need to ask clarifying questions, start your response with "I'd be happy to help! To provide you with the best assistance, I need a bit more information:" followed by your specific questions.`,
		string(label), entitiesJSON, dbContext)
}

// withContinuity appends a follow-up sentence when the previous user turn was
// on the same topic as this one.
func withContinuity(reply string, history []models.Message, label intent.Label) string {
	var lastUser string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleUser {
			lastUser = strings.ToLower(history[i].Content)
			break
		}
	}
	if lastUser == "" {
		return reply
	}

	switch {
	case label == intent.LabelProductSearch && strings.Contains(lastUser, "product"):
		return reply + "\n\nBased on our previous conversation about products, I can also help you with similar items or alternatives if needed."
	case label == intent.LabelInventory && strings.Contains(lastUser, "stock"):
		return reply + "\n\nI can also help you check stock for other products or categories if you're interested."
	default:
		return reply
	}
}

func (s *chatService) persistTurn(ctx context.Context, conversationID, message, reply string, label intent.Label, confidence *float64, entities nlp.Entities) error {
	intentStr := string(label)

	var entitiesJSON datatypes.JSON
	if !entities.IsEmpty() {
		if b, err := json.Marshal(entities); err == nil {
			entitiesJSON = datatypes.JSON(b)
		}
	}

	userMsg := &models.Message{
		ConversationID: conversationID,
		MessageID:      models.NewMessageID(),
		Role:           models.RoleUser,
		Content:        message,
		Intent:         &intentStr,
		Confidence:     confidence,
		Entities:       entitiesJSON,
	}
	assistantMsg := &models.Message{
		ConversationID: conversationID,
		MessageID:      models.NewMessageID(),
		Role:           models.RoleAssistant,
		Content:        reply,
		Intent:         &intentStr,
		Entities:       entitiesJSON,
	}
	return s.msgs.AppendPair(ctx, conversationID, userMsg, assistantMsg)
}
