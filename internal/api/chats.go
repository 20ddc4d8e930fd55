package api

import (
	"context"

	"campus-market/internal/model"
)

const chatsPath = "/api/chats"

// ChatsAPI covers /api/chats and chat messages.
type ChatsAPI struct {
	r Requester
}

// GetAll lists the chats visible to the caller.
func (a *ChatsAPI) GetAll(ctx context.Context) ([]model.Chat, error) {
	var chats []model.Chat
	if err := a.r.Get(ctx, chatsPath, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// GetByID fetches a single chat.
func (a *ChatsAPI) GetByID(ctx context.Context, id string) (*model.Chat, error) {
	var chat model.Chat
	if err := a.r.Get(ctx, resourcePath(chatsPath, id), &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Create opens a chat about a product.
func (a *ChatsAPI) Create(ctx context.Context, input model.ChatInput) (*model.Chat, error) {
	var chat model.Chat
	if err := a.r.Post(ctx, chatsPath, input, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetMessages returns a chat's messages in the order the backend sends them.
func (a *ChatsAPI) GetMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	var messages []model.Message
	if err := a.r.Get(ctx, resourcePath(chatsPath, chatID, "messages"), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a message to a chat.
func (a *ChatsAPI) SendMessage(ctx context.Context, chatID string, input model.MessageInput) (*model.Message, error) {
	var message model.Message
	if err := a.r.Post(ctx, resourcePath(chatsPath, chatID, "messages"), input, &message); err != nil {
		return nil, err
	}
	return &message, nil
}
