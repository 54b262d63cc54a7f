package domain

import "time"

// Remitentes válidos de un mensaje dentro de un chat.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type Message struct {
	ID        string    `json:"id" firestore:"-"`
	Sender    string    `json:"sender" firestore:"sender"`
	Text      string    `json:"message" firestore:"message"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}
