package registry

import "time"

// User is a registry record. It is never modified once created.
// The password is kept only as a salted hash.
type User struct {
	ID           string
	Email        string
	PasswordSalt []byte
	PasswordHash []byte
	CreatedAt    time.Time
}

// Item is a priced entry supplied by the caller.
type Item struct {
	ID    string
	Price float64
}
