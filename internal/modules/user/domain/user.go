package domain

import "time"

// User is a site administrator allowed to manage posts through the bot
type User struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	AddedAt  time.Time `json:"added_at"`
	IsAdmin  bool      `json:"is_admin"`
}
