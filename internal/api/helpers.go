package api

import "github.com/quotevibe/quotevibe-server/internal/domain"

// PageParams are the shared pagination query parameters.
type PageParams struct {
	Offset int `query:"offset" minimum:"0" doc:"Items to skip"`
	Limit  int `query:"limit" minimum:"0" doc:"Max items (default 20, max 100)"`
}

// AuthInput is the input of operations that only need the caller's identity.
type AuthInput struct {
	Authorization string `header:"Authorization"`
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// QuoteListResponse is a page of quotes.
type QuoteListResponse struct {
	Quotes []*domain.Quote `json:"quotes" doc:"Quotes in the requested order"`
}

// QuoteListOutput wraps a quote page for Huma.
type QuoteListOutput struct {
	Body QuoteListResponse
}

// UserListResponse is a list of public profiles.
type UserListResponse struct {
	Users []domain.UserProfile `json:"users" doc:"Public user profiles"`
}

// UserListOutput wraps a profile list for Huma.
type UserListOutput struct {
	Body UserListResponse
}

// ProfileOutput wraps a single public profile for Huma.
type ProfileOutput struct {
	Body domain.UserProfile
}

func quotesOrEmpty(quotes []*domain.Quote) []*domain.Quote {
	if quotes == nil {
		return []*domain.Quote{}
	}
	return quotes
}

func message(msg string) *MessageOutput {
	return &MessageOutput{Body: MessageResponse{Message: msg}}
}
