// internal/domain/models/user.go
package models

// Role is the marketplace role of the signed-in user.
type Role string

const (
	RoleAnonymous Role = ""
	RoleStudent   Role = "student"
	RoleTutor     Role = "tutor"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known signed-in roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// User is the identity record of whoever is signed in.
type User struct {
	ID       ID     `json:"id,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`

	Extra Attrs `json:"-"`
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return encodeOpen(plain(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	extra, err := decodeOpen(data, &p)
	if err != nil {
		return err
	}
	*u = User(p)
	u.Extra = extra
	return nil
}
