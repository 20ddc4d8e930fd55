package model

import "time"

// Chat is a conversation about a product between its participants.
type Chat struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatInput is the payload for opening a chat.
type ChatInput struct {
	ProductID    string   `json:"product_id"`
	Participants []string `json:"participants"`
}

// Message is a single chat message.
type Message struct {
	ID     string    `json:"id"`
	ChatID string    `json:"chat_id"`
	FromID string    `json:"from_id"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// MessageInput is the payload for sending a message.
type MessageInput struct {
	FromID string `json:"from_id"`
	Text   string `json:"text"`
}
