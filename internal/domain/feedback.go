package domain

import "time"

type Feedback struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"user_id" firestore:"user_id"`
	Text      string    `json:"feedback" firestore:"feedback"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}
