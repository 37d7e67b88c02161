package model

// User represents a catalog owner as stored in the `users` table.
// A user owns zero or more movies; deleting a user removes all of
// them through the movies.user_id foreign key cascade.
//
// Fields:
//  ID   – primary key identifier of the user.
//  Name – display name, non-empty, at most 100 characters.
type User struct {
	ID   uint64 `json:"id"`   // users.id
	Name string `json:"name"` // users.name
}
