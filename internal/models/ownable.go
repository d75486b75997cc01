package models

// Ownable is implemented by rows that belong to a single user. Handlers scope
// every read to the owner's id and report misses as not found.
type Ownable interface {
	GetUserID() uint
}

var (
	_ Ownable = (*Client)(nil)
	_ Ownable = Invoice{}
	_ Ownable = (*UserProfile)(nil)
)
