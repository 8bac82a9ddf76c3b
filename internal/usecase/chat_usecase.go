package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"

	"github.com/google/uuid"
)

type chatUsecase struct {
	chatRepo domain.ChatRepository
}

// NewChatUsecase creates a new chat usecase
func NewChatUsecase(chatRepo domain.ChatRepository) domain.ChatUsecase {
	return &chatUsecase{chatRepo: chatRepo}
}

// ListChats returns chats where the viewer is a participant, most recent
// first. The domain.ViewerAll sentinel returns every chat; the router only
// lets admins reach it.
func (uc *chatUsecase) ListChats(ctx context.Context, viewerID string) ([]domain.Chat, error) {
	if viewerID == "" {
		return nil, apperror.BadRequest("Viewer is required")
	}
	if viewerID == domain.ViewerAll {
		return uc.chatRepo.ListAll(ctx)
	}
	return uc.chatRepo.ListByParticipant(ctx, viewerID)
}

// GetChat returns one thread with its full message log
func (uc *chatUsecase) GetChat(ctx context.Context, viewerID, chatID string) (*domain.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Chat not found")
		}
		return nil, apperror.Internal(err)
	}
	if viewerID != domain.ViewerAll && !chat.HasParticipant(viewerID) {
		return nil, apperror.Forbidden("You are not a participant of this chat")
	}
	return chat, nil
}

// FindOrCreateChat looks up the thread for the unordered employer/seeker
// pair, creating it if absent. Applying to a second job with the same
// employer lands in the same thread: the dedup key is the pair, not the job
// title, which is kept as supplementary metadata and backfilled when unset.
func (uc *chatUsecase) FindOrCreateChat(ctx context.Context, params domain.FindOrCreateChatParams) (*domain.Chat, error) {
	if params.EmployerID == "" || params.SeekerID == "" {
		return nil, apperror.BadRequest("Both participants are required")
	}
	if params.EmployerID == params.SeekerID {
		return nil, apperror.BadRequest("A chat needs two distinct participants")
	}

	existing, err := uc.chatRepo.GetByParticipants(ctx, params.EmployerID, params.SeekerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return uc.augmentExisting(ctx, existing, params)
	}

	now := time.Now()
	chat := &domain.Chat{
		ID:           uuid.NewString(),
		EmployerID:   params.EmployerID,
		SeekerID:     params.SeekerID,
		EmployerName: params.EmployerName,
		SeekerName:   params.SeekerName,
		Tags:         params.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if params.JobTitle != "" {
		jobTitle := params.JobTitle
		chat.JobTitle = &jobTitle
	}
	if params.InitialMessage != "" {
		chat.Messages = append(chat.Messages, domain.Message{
			ID:        uuid.NewString(),
			ChatID:    chat.ID,
			SenderID:  params.SeekerID,
			Text:      params.InitialMessage,
			Timestamp: now,
			IsSystem:  true,
		})
		chat.LastMessage = &chat.Messages[0]
	}

	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost the create race against the other participant; the
			// unique participant-pair index guarantees a single thread,
			// so fall through to the augment path.
			existing, err = uc.chatRepo.GetByParticipants(ctx, params.EmployerID, params.SeekerID)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			return uc.augmentExisting(ctx, existing, params)
		}
		return nil, apperror.Internal(err)
	}
	return chat, nil
}

// augmentExisting applies the optional pieces of a find-or-create call to an
// already existing thread: the seeker-side system message and the job title
// backfill.
func (uc *chatUsecase) augmentExisting(ctx context.Context, chat *domain.Chat, params domain.FindOrCreateChatParams) (*domain.Chat, error) {
	if params.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, chat.ID, params.SeekerID, params.InitialMessage, true); err != nil {
			return nil, err
		}
	}
	if params.JobTitle != "" && chat.JobTitle == nil {
		if err := uc.chatRepo.SetJobTitle(ctx, chat.ID, params.JobTitle); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	chat, err := uc.chatRepo.GetByID(ctx, chat.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return chat, nil
}

// SendMessage appends a message to the named chat and updates its
// last-message metadata. A missing chat is signaled with NotFound and the
// store stays unchanged; callers surface it as a transient error.
func (uc *chatUsecase) SendMessage(ctx context.Context, chatID, senderID, text string, isSystem bool) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.BadRequest("Message text cannot be empty")
	}
	if senderID == "" {
		return nil, apperror.BadRequest("Sender is required")
	}

	msg := &domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now(),
		IsSystem:  isSystem,
	}

	if err := uc.chatRepo.AppendMessage(ctx, msg); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Chat not found")
		}
		return nil, apperror.Internal(err)
	}
	return msg, nil
}

// DeleteChat removes the thread. Deleting an unknown id yields NotFound.
func (uc *chatUsecase) DeleteChat(ctx context.Context, chatID string) error {
	deleted, err := uc.chatRepo.Delete(ctx, chatID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound("Chat not found")
	}
	return nil
}
