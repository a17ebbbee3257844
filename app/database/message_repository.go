package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ MessageRepository = (*SQLMessageRepository)(nil)

// SQLMessageRepository handles database operations for board messages
type SQLMessageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) *SQLMessageRepository {
	return &SQLMessageRepository{db: db}
}

// Insert appends one message row. The id is assigned by the storage engine
// (AUTOINCREMENT), so concurrent writers can never collide.
func (r *SQLMessageRepository) Insert(username, body string) (*Message, error) {
	now := time.Now().UTC()

	result, err := r.db.Exec(`
		INSERT INTO messages (username, message, created_at)
		VALUES (?, ?, ?)
	`, username, body, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted message id: %w", err)
	}

	return &Message{
		ID:        id,
		Username:  username,
		Body:      body,
		CreatedAt: now,
	}, nil
}

// Sample returns up to n distinct messages chosen uniformly at random.
// An empty table yields an empty slice, not an error.
func (r *SQLMessageRepository) Sample(n int) ([]Message, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := r.db.Query(`
		SELECT id, username, message, created_at
		FROM messages
		ORDER BY RANDOM()
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to sample messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.Username, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}

// Count returns the total number of stored messages
func (r *SQLMessageRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get message count: %w", err)
	}
	return count, nil
}

// MaxID returns the highest assigned message id, or 0 for an empty table
func (r *SQLMessageRepository) MaxID() (int64, error) {
	var id sql.NullInt64
	err := r.db.QueryRow("SELECT MAX(id) FROM messages").Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get max message id: %w", err)
	}
	return id.Int64, nil
}
