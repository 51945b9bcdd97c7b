package domain

import "time"

// User is a registered marketplace member. Hash, Salt and Token are
// credentials and never leave the service except Token at signup.
type User struct {
	ID      string
	Email   string
	Account Account
	Token   string
	Hash    string
	Salt    string

	CreatedAt time.Time
}

// Account is the public facing part of a user.
type Account struct {
	Username string
	Phone    string
	Avatar   *Image
}

// OwnerRef is the projection attached to a request after bearer
// authentication: just enough to stamp ownership on new offers.
func (u User) OwnerRef() Owner {
	return Owner{ID: u.ID, Account: &u.Account}
}

// OwnerPublic is the projection shown alongside offers in listings and
// fetches.
func (u User) OwnerPublic() Owner {
	return Owner{ID: u.ID, Email: u.Email, Account: &u.Account}
}
