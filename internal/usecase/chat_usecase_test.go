package usecase_test

import (
	"context"
	"testing"

	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/internal/usecase"
	"go-jobreels-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatRepo is a stateful in-memory ChatRepository so the find-or-create
// and append semantics can be exercised end to end.
type fakeChatRepo struct {
	chats map[string]*domain.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*domain.Chat)}
}

func (r *fakeChatRepo) Create(_ context.Context, chat *domain.Chat) error {
	for _, c := range r.chats {
		if samePair(c, chat.EmployerID, chat.SeekerID) {
			return domain.ErrAlreadyExists
		}
	}
	stored := *chat
	r.chats[chat.ID] = &stored
	return nil
}

func (r *fakeChatRepo) GetByID(_ context.Context, id string) (*domain.Chat, error) {
	chat, ok := r.chats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *chat
	if len(out.Messages) > 0 {
		out.LastMessage = &out.Messages[len(out.Messages)-1]
	}
	return &out, nil
}

func (r *fakeChatRepo) GetByParticipants(ctx context.Context, employerID, seekerID string) (*domain.Chat, error) {
	for id, c := range r.chats {
		if samePair(c, employerID, seekerID) {
			return r.GetByID(ctx, id)
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeChatRepo) ListByParticipant(ctx context.Context, viewerID string) ([]domain.Chat, error) {
	var out []domain.Chat
	for id, c := range r.chats {
		if c.HasParticipant(viewerID) {
			chat, _ := r.GetByID(ctx, id)
			out = append(out, *chat)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) ListAll(ctx context.Context) ([]domain.Chat, error) {
	var out []domain.Chat
	for id := range r.chats {
		chat, _ := r.GetByID(ctx, id)
		out = append(out, *chat)
	}
	return out, nil
}

func (r *fakeChatRepo) AppendMessage(_ context.Context, msg *domain.Message) error {
	chat, ok := r.chats[msg.ChatID]
	if !ok {
		return domain.ErrNotFound
	}
	chat.Messages = append(chat.Messages, *msg)
	chat.UpdatedAt = msg.Timestamp
	return nil
}

func (r *fakeChatRepo) SetJobTitle(_ context.Context, chatID, jobTitle string) error {
	chat, ok := r.chats[chatID]
	if !ok {
		return domain.ErrNotFound
	}
	if chat.JobTitle == nil {
		chat.JobTitle = &jobTitle
	}
	return nil
}

func (r *fakeChatRepo) Delete(_ context.Context, chatID string) (bool, error) {
	if _, ok := r.chats[chatID]; !ok {
		return false, nil
	}
	delete(r.chats, chatID)
	return true, nil
}

func samePair(c *domain.Chat, a, b string) bool {
	return (c.EmployerID == a && c.SeekerID == b) || (c.EmployerID == b && c.SeekerID == a)
}

func totalMessages(c *domain.Chat) int {
	return len(c.Messages)
}

func TestFindOrCreateChatIdempotent(t *testing.T) {
	repo := newFakeChatRepo()
	uc := usecase.NewChatUsecase(repo)
	ctx := context.Background()

	params := domain.FindOrCreateChatParams{
		EmployerID:   "e1",
		SeekerID:     "s1",
		EmployerName: "Acme Corp",
		SeekerName:   "Jane Smith",
	}

	first, err := uc.FindOrCreateChat(ctx, params)
	require.NoError(t, err)
	second, err := uc.FindOrCreateChat(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same unordered pair must yield the same thread")
	assert.Len(t, repo.chats, 1)
	assert.Zero(t, totalMessages(second), "no initial messages supplied, none may appear")

	t.Run("pair is unordered", func(t *testing.T) {
		// A lookup keyed the other way round still lands in the thread.
		swapped, err := uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{
			EmployerID: "e1", SeekerID: "s1",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, swapped.ID)
		assert.Len(t, repo.chats, 1)
	})

	t.Run("message growth is bounded by supplied initial messages", func(t *testing.T) {
		withMsg := params
		withMsg.InitialMessage = "Hello again"
		chat, err := uc.FindOrCreateChat(ctx, withMsg)
		require.NoError(t, err)
		assert.Equal(t, first.ID, chat.ID)
		assert.Equal(t, 1, totalMessages(chat))
	})
}

func TestFindOrCreateChatJobTitleBackfill(t *testing.T) {
	repo := newFakeChatRepo()
	uc := usecase.NewChatUsecase(repo)
	ctx := context.Background()

	// Thread starts without a job title (direct-message path).
	chat, err := uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{
		EmployerID: "e1", SeekerID: "s1",
	})
	require.NoError(t, err)
	assert.Nil(t, chat.JobTitle)

	// First apply backfills the title.
	chat, err = uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{
		EmployerID: "e1", SeekerID: "s1", JobTitle: "Frontend Dev",
	})
	require.NoError(t, err)
	require.NotNil(t, chat.JobTitle)
	assert.Equal(t, "Frontend Dev", *chat.JobTitle)

	// A later apply for a different job does not overwrite it.
	chat, err = uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{
		EmployerID: "e1", SeekerID: "s1", JobTitle: "Backend Dev",
	})
	require.NoError(t, err)
	require.NotNil(t, chat.JobTitle)
	assert.Equal(t, "Frontend Dev", *chat.JobTitle)
}

func TestFindOrCreateChatValidation(t *testing.T) {
	uc := usecase.NewChatUsecase(newFakeChatRepo())
	ctx := context.Background()

	_, err := uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{EmployerID: "e1"})
	assert.Error(t, err)

	_, err = uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{EmployerID: "e1", SeekerID: "e1"})
	assert.Error(t, err)
}

func TestSendMessageUnknownChat(t *testing.T) {
	repo := newFakeChatRepo()
	uc := usecase.NewChatUsecase(repo)
	ctx := context.Background()

	existing, err := uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{
		EmployerID: "e1", SeekerID: "s1",
	})
	require.NoError(t, err)

	msg, err := uc.SendMessage(ctx, "no-such-chat", "e1", "hello", false)
	assert.Nil(t, msg)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)

	// The store is unchanged.
	unchanged, err := uc.GetChat(ctx, "e1", existing.ID)
	require.NoError(t, err)
	assert.Zero(t, totalMessages(unchanged))
	assert.Len(t, repo.chats, 1)
}

func TestSendMessageValidation(t *testing.T) {
	uc := usecase.NewChatUsecase(newFakeChatRepo())

	_, err := uc.SendMessage(context.Background(), "c1", "e1", "   ", false)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestDeleteChat(t *testing.T) {
	repo := newFakeChatRepo()
	uc := usecase.NewChatUsecase(repo)
	ctx := context.Background()

	chat, err := uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{
		EmployerID: "e1", SeekerID: "s1",
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteChat(ctx, chat.ID))
	assert.Empty(t, repo.chats)

	err = uc.DeleteChat(ctx, chat.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestDirectMessageScenario(t *testing.T) {
	repo := newFakeChatRepo()
	uc := usecase.NewChatUsecase(repo)
	ctx := context.Background()

	// Employer e1 reaches out to seeker s1 directly.
	chat, err := uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{
		EmployerID: "e1", SeekerID: "s1",
		EmployerName: "Acme Corp", SeekerName: "Jane Smith",
	})
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, chat.ID, "e1", "Hi s1, loved your pitch video", false)
	require.NoError(t, err)

	// Seeker s1 lists their chats and finds exactly one.
	chats, err := uc.ListChats(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	require.NotNil(t, chats[0].LastMessage)
	assert.Equal(t, "Hi s1, loved your pitch video", chats[0].LastMessage.Text)
	assert.False(t, chats[0].LastMessage.IsSystem)
}

func TestApplyScenario(t *testing.T) {
	repo := newFakeChatRepo()
	uc := usecase.NewChatUsecase(repo)
	ctx := context.Background()

	apply := domain.FindOrCreateChatParams{
		EmployerID:     "e1",
		SeekerID:       "s1",
		EmployerName:   "Acme Corp",
		SeekerName:     "Jane Smith",
		InitialMessage: "Applied to Frontend Dev",
		JobTitle:       "Frontend Dev",
	}

	chat, err := uc.FindOrCreateChat(ctx, apply)
	require.NoError(t, err)
	require.NotNil(t, chat.JobTitle)
	assert.Equal(t, "Frontend Dev", *chat.JobTitle)
	require.Equal(t, 1, totalMessages(chat))
	assert.True(t, chat.Messages[0].IsSystem)
	assert.Equal(t, "s1", chat.Messages[0].SenderID, "application messages come from the seeker side")

	// Repeating the apply action reuses the thread and keeps the title.
	again, err := uc.FindOrCreateChat(ctx, apply)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, again.ID)
	assert.Len(t, repo.chats, 1)
	assert.Equal(t, "Frontend Dev", *again.JobTitle)
	assert.Equal(t, 2, totalMessages(again))
}

func TestListChatsSentinel(t *testing.T) {
	repo := newFakeChatRepo()
	uc := usecase.NewChatUsecase(repo)
	ctx := context.Background()

	_, err := uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{EmployerID: "e1", SeekerID: "s1"})
	require.NoError(t, err)
	_, err = uc.FindOrCreateChat(ctx, domain.FindOrCreateChatParams{EmployerID: "e2", SeekerID: "s2"})
	require.NoError(t, err)

	all, err := uc.ListChats(ctx, domain.ViewerAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := uc.ListChats(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = uc.ListChats(ctx, "")
	assert.Error(t, err)
}
