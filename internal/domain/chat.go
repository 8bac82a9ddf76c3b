package domain

import (
	"context"
	"time"
)

// ViewerAll is the sentinel viewer accepted by ListChats for callers that
// have not resolved a real identity yet. Restricted to admins at the
// delivery layer.
const ViewerAll = "all"

// Message is a single entry in a chat thread. IsSystem marks auto-generated
// application messages as opposed to text typed by a participant.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsSystem  bool      `json:"is_system"`
}

// Chat is a conversation between exactly one employer and one seeker.
// At most one chat exists per unordered participant pair; job applications
// and direct messages between the same two people share a thread, with the
// job title retained as supplementary metadata only.
type Chat struct {
	ID           string    `json:"id"`
	EmployerID   string    `json:"employer_id"`
	SeekerID     string    `json:"seeker_id"`
	EmployerName string    `json:"employer_name"`
	SeekerName   string    `json:"seeker_name"`
	JobTitle     *string   `json:"job_title,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Messages     []Message `json:"messages,omitempty"`
	LastMessage  *Message  `json:"last_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Chat) HasParticipant(userID string) bool {
	return c.EmployerID == userID || c.SeekerID == userID
}

// FindOrCreateChatParams carries everything needed to locate or build a
// thread for an employer/seeker pair. Display names are denormalized onto
// the chat so listings render without extra lookups.
type FindOrCreateChatParams struct {
	EmployerID   string
	SeekerID     string
	EmployerName string
	SeekerName   string
	// InitialMessage, when non-empty, is appended on behalf of the seeker
	// and flagged as a system message (the apply flow).
	InitialMessage string
	JobTitle       string
	Tags           []string
}

type ChatRepository interface {
	Create(ctx context.Context, chat *Chat) error
	GetByID(ctx context.Context, id string) (*Chat, error)
	// GetByParticipants looks up the chat for the unordered pair.
	GetByParticipants(ctx context.Context, employerID, seekerID string) (*Chat, error)
	ListByParticipant(ctx context.Context, viewerID string) ([]Chat, error)
	ListAll(ctx context.Context) ([]Chat, error)
	// AppendMessage adds a message and bumps the chat's updated_at.
	// Returns ErrNotFound when the chat does not exist.
	AppendMessage(ctx context.Context, msg *Message) error
	// SetJobTitle backfills the job title if it is currently unset.
	SetJobTitle(ctx context.Context, chatID, jobTitle string) error
	// Delete removes the chat and its messages, reporting whether a chat
	// was actually removed.
	Delete(ctx context.Context, chatID string) (bool, error)
}

type ChatUsecase interface {
	ListChats(ctx context.Context, viewerID string) ([]Chat, error)
	GetChat(ctx context.Context, viewerID, chatID string) (*Chat, error)
	FindOrCreateChat(ctx context.Context, params FindOrCreateChatParams) (*Chat, error)
	SendMessage(ctx context.Context, chatID, senderID, text string, isSystem bool) (*Message, error)
	DeleteChat(ctx context.Context, chatID string) error
}
