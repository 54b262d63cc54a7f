package domain

import "time"

// DefaultProfilePicture se usa cuando el usuario no subió una foto propia.
const DefaultProfilePicture = "https://firebasestorage.googleapis.com/v0/b/gotravel-9fad0.appspot.com/o/profile_pictures%2Fmale.png?alt=media&token=ed087933-e6cb-4781-b952-67cdf37b8dad"

type User struct {
	ID             string    `json:"id" firestore:"-"`
	Nickname       string    `json:"nickname" firestore:"nickname"`
	Fullname       string    `json:"fullname" firestore:"fullname"`
	Email          string    `json:"email" firestore:"email"`
	ProfilePicture string    `json:"profile_picture" firestore:"profile_picture"`
	CreatedAt      time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updated_at"`
}
