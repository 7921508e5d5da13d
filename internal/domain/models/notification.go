// internal/domain/models/notification.go
package models

import "time"

// Notification is a message addressed to the signed-in user.
type Notification struct {
	ID        ID         `json:"id"`
	UserID    ID         `json:"userId,omitempty"`
	Type      string     `json:"type,omitempty"`
	Title     string     `json:"title,omitempty"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`

	Extra Attrs `json:"-"`
}

func (n Notification) MarshalJSON() ([]byte, error) {
	type plain Notification
	return encodeOpen(plain(n), n.Extra)
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	type plain Notification
	var p plain
	extra, err := decodeOpen(data, &p)
	if err != nil {
		return err
	}
	*n = Notification(p)
	n.Extra = extra
	return nil
}
