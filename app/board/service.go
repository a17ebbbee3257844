package board

import (
	"log/slog"
	"strings"

	"github.com/avolkov/castboard/app/database"
)

// Service implements the message board submission and view flows on top of
// an explicitly injected message repository. Handlers stay stateless; the
// store handle is threaded through here rather than read from a global.
type Service struct {
	messageRepo database.MessageRepository
}

func NewService(messageRepo database.MessageRepository) *Service {
	return &Service{messageRepo: messageRepo}
}

// Submit validates and stores one message. An empty username or body yields
// a ValidationError and nothing is written; a repository failure yields a
// StorageError wrapping the cause.
func (s *Service) Submit(username, body string) (*database.Message, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &ValidationError{Field: "user"}
	}
	if strings.TrimSpace(body) == "" {
		return nil, &ValidationError{Field: "message"}
	}

	msg, err := s.messageRepo.Insert(username, body)
	if err != nil {
		return nil, &StorageError{Op: "insert", Err: err}
	}

	slog.Debug("Message stored", "id", msg.ID, "user", msg.Username)

	return msg, nil
}

// Sample returns up to n random messages. An empty board is a normal empty
// result, not an error.
func (s *Service) Sample(n int) ([]database.Message, error) {
	messages, err := s.messageRepo.Sample(n)
	if err != nil {
		return nil, &StorageError{Op: "sample", Err: err}
	}
	return messages, nil
}

// Count returns the number of stored messages
func (s *Service) Count() (int, error) {
	count, err := s.messageRepo.Count()
	if err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return count, nil
}
