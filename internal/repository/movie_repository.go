package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/moviweb/internal/model"
)

// MovieRepo manages persistence for movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// MovieUpdate describes a partial update. A nil field means "leave
// unchanged"; a non-nil field is always written, so zero values such
// as a rating of 0 are representable. UserID is deliberately absent:
// a movie's owner is immutable after creation.
type MovieUpdate struct {
	Title    *string
	Director *string
	Year     *int
	Rating   *float64
}

// ListByUser returns the movies owned by the given user, or an empty
// slice when the user has none or does not exist. Distinguishing the
// two cases is the caller's job via UserRepo.GetByID.
func (r *MovieRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Movie, error) {
	const q = `SELECT id, title, director, year, rating, user_id FROM movies WHERE user_id = ?`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list movies for user %d: %w", userID, err)
	}
	defer rows.Close()
	var movies []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.Rating, &m.UserID); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movies for user %d: %w", userID, err)
	}
	return movies, nil
}

// GetByID fetches a movie by id. Returns ErrMovieNotFound when no row
// matches.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	const q = `SELECT id, title, director, year, rating, user_id FROM movies WHERE id = ? LIMIT 1`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.Rating, &m.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Movie{}, ErrMovieNotFound
		}
		return model.Movie{}, fmt.Errorf("get movie %d: %w", id, err)
	}
	return m, nil
}

// Create inserts a movie and assigns the generated id back onto m.
// The foreign key on movies.user_id makes the engine reject an
// unknown owner; that violation is surfaced as ErrUserNotFound.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, director, year, rating, user_id) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Director, m.Year, m.Rating, m.UserID)
	if err != nil {
		if isFKViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("create movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create movie: last insert id: %w", err)
	}
	m.ID = uint64(id)
	return nil
}

// Update applies a partial update to a movie. Only non-nil fields in
// upd produce SET clauses. Returns ErrMovieNotFound when the movie
// does not exist; an update with no fields set is a valid no-op.
func (r *MovieRepo) Update(ctx context.Context, id uint64, upd MovieUpdate) error {
	// Existence is checked up front: RowsAffected cannot be used to
	// detect a missing row because MySQL reports zero affected rows
	// when the new values equal the old ones.
	var exists uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM movies WHERE id = ? LIMIT 1`, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("update movie %d: %w", id, err)
	}

	setClauses := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if upd.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Director != nil {
		setClauses = append(setClauses, "director = ?")
		args = append(args, *upd.Director)
	}
	if upd.Year != nil {
		setClauses = append(setClauses, "year = ?")
		args = append(args, *upd.Year)
	}
	if upd.Rating != nil {
		setClauses = append(setClauses, "rating = ?")
		args = append(args, *upd.Rating)
	}
	if len(setClauses) == 0 {
		return nil
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE movies SET %s WHERE id = ?`, strings.Join(setClauses, ", "))
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update movie %d: %w", id, err)
	}
	return nil
}

// Delete removes a movie by id. Deleting an id that does not exist is
// a no-op, not an error.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM movies WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}
	return nil
}

// isFKViolation reports whether err is a foreign key constraint
// failure. MySQL signals it as error 1452; sqlite spells it out.
func isFKViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1452") || strings.Contains(msg, "foreign key")
}
