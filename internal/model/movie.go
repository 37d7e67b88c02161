package model

// Movie represents a row in the `movies` table. Every movie belongs
// to exactly one user; UserID is set at creation time and never
// changes afterwards.
//
// Fields:
//  ID       – primary key identifier.
//  Title    – movie title, non-empty, at most 100 characters.
//  Director – director name, letters and spaces only.
//  Year     – release year.
//  Rating   – numeric rating on a 0–10 scale.
//  UserID   – owning user (movies.user_id, references users.id).
type Movie struct {
	ID       uint64  `json:"id"`       // movies.id
	Title    string  `json:"title"`    // movies.title
	Director string  `json:"director"` // movies.director
	Year     int     `json:"year"`     // movies.year
	Rating   float64 `json:"rating"`   // movies.rating
	UserID   uint64  `json:"user_id"`  // movies.user_id
}
