package database

import (
	"time"
)

type Message struct {
	ID        int64
	Username  string
	Body      string
	CreatedAt time.Time
}
