package model

// User is an account identified by its username. Passwords are stored and
// compared in plain text; the schema contract does not include hashing.
type User struct {
	Username string
	Password string
	Email    string
}

// NewUser creates a user. Email may be empty.
func NewUser(username, password, email string) *User {
	return &User{Username: username, Password: password, Email: email}
}
