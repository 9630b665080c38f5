package postgres

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

const messagesTable = "messages"

type MessageRepository struct {
	db *sql.DB
	qb *goqu.Database
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db, qb: goqu.New("postgres", db)}
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query, args, err := r.qb.Insert(messagesTable).Rows(goqu.Record{
		"id":          message.ID,
		"sender_id":   message.SenderID,
		"receiver_id": message.ReceiverID,
		"content":     message.Content,
		"created_at":  message.CreatedAt,
		"read":        message.Read,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create message", err)
	}

	return nil
}

// ListForUser returns every message userID sent or received, oldest first.
func (r *MessageRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error) {
	query, args, err := r.qb.Select("id", "sender_id", "receiver_id", "content", "created_at", "read").
		From(messagesTable).
		Where(goqu.Or(
			goqu.C("sender_id").Eq(userID),
			goqu.C("receiver_id").Eq(userID),
		)).
		Order(goqu.C("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list messages", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt, &m.Read); err != nil {
			return nil, apperrors.NewInternalError("failed to scan message", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate messages", err)
	}

	return messages, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error) {
	query, args, err := r.qb.Update(messagesTable).
		Set(goqu.Record{"read": true}).
		Where(goqu.Ex{
			"receiver_id": receiverID,
			"sender_id":   senderID,
			"read":        false,
		}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to mark messages read", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to read affected rows", err)
	}

	return n, nil
}
