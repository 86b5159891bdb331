package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

func (s *Server) registerMessageRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "sendMessage",
		Method:        http.MethodPost,
		Path:          "/api/v1/messages",
		Summary:       "Send message",
		Description:   "Sends a direct message to another user",
		Tags:          []string{"Messages"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
		Middlewares:   huma.Middlewares{s.limitByUser},
	}, s.handleSendMessage)

	huma.Register(s.api, huma.Operation{
		OperationID: "listConversations",
		Method:      http.MethodGet,
		Path:        "/api/v1/messages/conversations",
		Summary:     "List conversations",
		Description: "Returns one entry per conversation partner with the latest message, newest first",
		Tags:        []string{"Messages"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListConversations)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUnreadMessageCount",
		Method:      http.MethodGet,
		Path:        "/api/v1/messages/unread-count",
		Summary:     "Unread message count",
		Tags:        []string{"Messages"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUnreadMessageCount)

	huma.Register(s.api, huma.Operation{
		OperationID: "getThread",
		Method:      http.MethodGet,
		Path:        "/api/v1/messages/{userId}",
		Summary:     "Get thread",
		Description: "Returns the messages exchanged with a user, oldest first, and marks the ones received as read",
		Tags:        []string{"Messages"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetThread)
}

// === DTOs ===

// SendMessageRequest is the request body for sending a message.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" doc:"Recipient user ID"`
	Content    string `json:"content" doc:"Message text (max 2000 characters)"`
}

// SendMessageInput wraps the send request for Huma.
type SendMessageInput struct {
	Authorization string `header:"Authorization"`
	Body          SendMessageRequest
}

// MessageItemOutput wraps a single message for Huma.
type MessageItemOutput struct {
	Body *domain.Message
}

// ConversationListResponse lists conversations.
type ConversationListResponse struct {
	Conversations []domain.Conversation `json:"conversations" doc:"One entry per partner"`
}

// ConversationListOutput wraps the conversation list for Huma.
type ConversationListOutput struct {
	Body ConversationListResponse
}

// ThreadInput identifies the conversation partner.
type ThreadInput struct {
	Authorization string `header:"Authorization"`
	UserID        string `path:"userId" doc:"Conversation partner ID"`
}

// ThreadResponse lists the messages of one conversation.
type ThreadResponse struct {
	Messages []*domain.Message `json:"messages" doc:"Messages, oldest first"`
}

// ThreadOutput wraps the thread for Huma.
type ThreadOutput struct {
	Body ThreadResponse
}

// UnreadCountResponse carries an unread counter.
type UnreadCountResponse struct {
	Count int64 `json:"count" doc:"Number of unread items"`
}

// UnreadCountOutput wraps the unread count for Huma.
type UnreadCountOutput struct {
	Body UnreadCountResponse
}

// === Handlers ===

func (s *Server) handleSendMessage(ctx context.Context, input *SendMessageInput) (*MessageItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := s.services.Conversation.SendMessage(ctx, userID, input.Body.ReceiverID, input.Body.Content)
	if err != nil {
		return nil, err
	}
	return &MessageItemOutput{Body: msg}, nil
}

func (s *Server) handleListConversations(ctx context.Context, _ *AuthInput) (*ConversationListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	conversations, err := s.services.Conversation.GetConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conversations == nil {
		conversations = []domain.Conversation{}
	}
	return &ConversationListOutput{Body: ConversationListResponse{Conversations: conversations}}, nil
}

func (s *Server) handleGetUnreadMessageCount(ctx context.Context, _ *AuthInput) (*UnreadCountOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.services.Conversation.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountOutput{Body: UnreadCountResponse{Count: count}}, nil
}

func (s *Server) handleGetThread(ctx context.Context, input *ThreadInput) (*ThreadOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := s.services.Conversation.GetThread(ctx, userID, input.UserID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return &ThreadOutput{Body: ThreadResponse{Messages: messages}}, nil
}
