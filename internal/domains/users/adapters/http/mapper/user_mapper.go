package mapper

import userdomain "github.com/sportsstore/go-gin-store-server/internal/domains/users/domain"

// User represents the transport-level user payload. Password is accepted on
// input and never serialized back.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Admin     bool   `json:"admin,omitempty"`
}

// ToDomainUser converts a transport user to its domain counterpart.
func ToDomainUser(model User) (*userdomain.User, error) {
	user, err := userdomain.NewUser(model.ID, model.Username, model.Password)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(model.FirstName, model.LastName, model.Email, model.Phone); err != nil {
		return nil, err
	}
	user.Admin = model.Admin
	return user, nil
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Admin:     user.Admin,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
