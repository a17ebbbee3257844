package database

type MessageRepository interface {
	Insert(username, body string) (*Message, error)
	Sample(n int) ([]Message, error)
	Count() (int, error)
	MaxID() (int64, error)
}
