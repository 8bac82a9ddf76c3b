package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobreels-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Schema note: chats carries a unique index on the sorted participant pair
//
//	CREATE UNIQUE INDEX chats_participants_key
//	    ON chats (LEAST(employer_id, seeker_id), GREATEST(employer_id, seeker_id));
//
// so two clients racing to create the same thread cannot produce duplicates.
type chatRepo struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *pgxpool.Pool) domain.ChatRepository {
	return &chatRepo{db: db}
}

// Create inserts a new chat with its seed messages, if any
func (r *chatRepo) Create(ctx context.Context, chat *domain.Chat) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO chats (id, employer_id, seeker_id, employer_name, seeker_name, job_title, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = now
	}
	if chat.UpdatedAt.IsZero() {
		chat.UpdatedAt = now
	}

	_, err = tx.Exec(ctx, query,
		chat.ID,
		chat.EmployerID,
		chat.SeekerID,
		chat.EmployerName,
		chat.SeekerName,
		chat.JobTitle,
		pq.Array(chat.Tags),
		chat.CreatedAt,
		chat.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}

	for i := range chat.Messages {
		msg := &chat.Messages[i]
		msg.ChatID = chat.ID
		if _, err := tx.Exec(ctx,
			`INSERT INTO chat_messages (id, chat_id, sender_id, text, is_system, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			msg.ID, msg.ChatID, msg.SenderID, msg.Text, msg.IsSystem, msg.Timestamp,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a chat with its full ordered message log
func (r *chatRepo) GetByID(ctx context.Context, id string) (*domain.Chat, error) {
	query := `
		SELECT id, employer_id, seeker_id, employer_name, seeker_name, job_title, tags, created_at, updated_at
		FROM chats
		WHERE id = $1`

	var chat domain.Chat
	var tags []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&chat.ID, &chat.EmployerID, &chat.SeekerID,
		&chat.EmployerName, &chat.SeekerName, &chat.JobTitle,
		pq.Array(&tags), &chat.CreatedAt, &chat.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	chat.Tags = tags

	if err := r.loadMessages(ctx, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetByParticipants looks up the chat for the unordered employer/seeker pair
func (r *chatRepo) GetByParticipants(ctx context.Context, employerID, seekerID string) (*domain.Chat, error) {
	query := `
		SELECT id FROM chats
		WHERE (employer_id = $1 AND seeker_id = $2)
		   OR (employer_id = $2 AND seeker_id = $1)`

	var id string
	err := r.db.QueryRow(ctx, query, employerID, seekerID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ListByParticipant returns chats the viewer takes part in, most recent first
func (r *chatRepo) ListByParticipant(ctx context.Context, viewerID string) ([]domain.Chat, error) {
	return r.list(ctx, `WHERE c.employer_id = $1 OR c.seeker_id = $1`, viewerID)
}

// ListAll returns every chat, most recent first
func (r *chatRepo) ListAll(ctx context.Context) ([]domain.Chat, error) {
	return r.list(ctx, ``)
}

func (r *chatRepo) list(ctx context.Context, where string, args ...interface{}) ([]domain.Chat, error) {
	query := `
		SELECT
			c.id, c.employer_id, c.seeker_id, c.employer_name, c.seeker_name,
			c.job_title, c.tags, c.created_at, c.updated_at,
			m.id, m.sender_id, m.text, m.is_system, m.created_at
		FROM chats c
		LEFT JOIN LATERAL (
			SELECT id, sender_id, text, is_system, created_at
			FROM chat_messages
			WHERE chat_id = c.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) m ON true
		` + where + `
		ORDER BY c.updated_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var chat domain.Chat
		var tags []string
		var msgID, msgSender, msgText *string
		var msgSystem *bool
		var msgAt *time.Time
		if err := rows.Scan(
			&chat.ID, &chat.EmployerID, &chat.SeekerID,
			&chat.EmployerName, &chat.SeekerName,
			&chat.JobTitle, pq.Array(&tags), &chat.CreatedAt, &chat.UpdatedAt,
			&msgID, &msgSender, &msgText, &msgSystem, &msgAt,
		); err != nil {
			return nil, err
		}
		chat.Tags = tags
		if msgID != nil {
			chat.LastMessage = &domain.Message{
				ID:        *msgID,
				ChatID:    chat.ID,
				SenderID:  *msgSender,
				Text:      *msgText,
				IsSystem:  *msgSystem,
				Timestamp: *msgAt,
			}
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// AppendMessage adds a message and bumps the chat's updated_at in one
// transaction. Returns domain.ErrNotFound when the chat does not exist,
// leaving the store unchanged.
func (r *chatRepo) AppendMessage(ctx context.Context, msg *domain.Message) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx,
		`UPDATE chats SET updated_at = $2 WHERE id = $1`,
		msg.ChatID, msg.Timestamp,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO chat_messages (id, chat_id, sender_id, text, is_system, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.ChatID, msg.SenderID, msg.Text, msg.IsSystem, msg.Timestamp,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SetJobTitle backfills the job title only when it is currently unset
func (r *chatRepo) SetJobTitle(ctx context.Context, chatID, jobTitle string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE chats SET job_title = $2 WHERE id = $1 AND job_title IS NULL`,
		chatID, jobTitle,
	)
	return err
}

// Delete removes the chat and its messages, reporting whether one was removed
func (r *chatRepo) Delete(ctx context.Context, chatID string) (bool, error) {
	// chat_messages.chat_id is ON DELETE CASCADE
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM chats WHERE id = $1`, chatID)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *chatRepo) loadMessages(ctx context.Context, chat *domain.Chat) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, text, is_system, created_at
		 FROM chat_messages
		 WHERE chat_id = $1
		 ORDER BY created_at ASC, id ASC`,
		chat.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var msg domain.Message
		msg.ChatID = chat.ID
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.Text, &msg.IsSystem, &msg.Timestamp); err != nil {
			return err
		}
		chat.Messages = append(chat.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(chat.Messages) > 0 {
		chat.LastMessage = &chat.Messages[len(chat.Messages)-1]
	}
	return nil
}
