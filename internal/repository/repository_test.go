package repository_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/moviweb/internal/model"
	"github.com/iliyamo/moviweb/internal/repository"
)

// newTestDB opens an in-memory sqlite database with the same shape as
// the MySQL migrations: both engines accept ? placeholders, and the
// foreign key pragma gives sqlite the same ON DELETE CASCADE
// semantics the real schema declares.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// A fresh pool connection would see a fresh empty memory DB, so
	// the whole test runs over a single connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		)`)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE movies (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			title    TEXT    NOT NULL,
			director TEXT    NOT NULL,
			year     INTEGER NOT NULL,
			rating   REAL    NOT NULL,
			user_id  INTEGER NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
		)`)
	require.NoError(t, err)

	return db
}

func newRepos(t *testing.T) (*repository.UserRepo, *repository.MovieRepo) {
	t.Helper()
	db := newTestDB(t)
	return repository.NewUserRepo(db), repository.NewMovieRepo(db)
}

func addInception(t *testing.T, movies *repository.MovieRepo, userID uint64) model.Movie {
	t.Helper()
	m := model.Movie{
		Title:    "Inception",
		Director: "Christopher Nolan",
		Year:     2010,
		Rating:   8.8,
		UserID:   userID,
	}
	require.NoError(t, movies.Create(context.Background(), &m))
	return m
}

func TestUserRepo_CreateAndList(t *testing.T) {
	users, _ := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, "Johnny Ponny")
	require.NoError(t, err)
	require.NotZero(t, id)

	id2, err := users.Create(ctx, "Alice")
	require.NoError(t, err)
	require.NotEqual(t, id, id2)

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	names := map[uint64]string{}
	for _, u := range all {
		names[u.ID] = u.Name
	}
	require.Equal(t, "Johnny Ponny", names[id])
	require.Equal(t, "Alice", names[id2])
}

func TestUserRepo_GetByID(t *testing.T) {
	users, _ := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, "Johnny Ponny")
	require.NoError(t, err)

	u, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Johnny Ponny", u.Name)

	_, err = users.GetByID(ctx, 99999)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepo_Delete_CascadesToMovies(t *testing.T) {
	users, movies := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, "Johnny Ponny")
	require.NoError(t, err)
	m := addInception(t, movies, id)

	require.NoError(t, users.Delete(ctx, id))

	_, err = users.GetByID(ctx, id)
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	left, err := movies.ListByUser(ctx, id)
	require.NoError(t, err)
	require.Empty(t, left)

	_, err = movies.GetByID(ctx, m.ID)
	require.ErrorIs(t, err, repository.ErrMovieNotFound)
}

func TestUserRepo_Delete_UnknownIDIsNoOp(t *testing.T) {
	users, _ := newRepos(t)
	require.NoError(t, users.Delete(context.Background(), 424242))
}

func TestMovieRepo_CreateAndListRoundTrip(t *testing.T) {
	users, movies := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, "Johnny Ponny")
	require.NoError(t, err)
	created := addInception(t, movies, id)
	require.NotZero(t, created.ID)

	list, err := movies.ListByUser(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, created, list[0])
}

func TestMovieRepo_Create_UnknownUser(t *testing.T) {
	_, movies := newRepos(t)

	m := model.Movie{Title: "Orphan", Director: "Nobody", Year: 2000, Rating: 5, UserID: 12345}
	err := movies.Create(context.Background(), &m)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestMovieRepo_ListByUser_UnknownUserIsEmpty(t *testing.T) {
	_, movies := newRepos(t)

	list, err := movies.ListByUser(context.Background(), 777)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestMovieRepo_Update_RatingOnly(t *testing.T) {
	users, movies := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, "Johnny Ponny")
	require.NoError(t, err)
	m := addInception(t, movies, id)

	rating := 9.5
	require.NoError(t, movies.Update(ctx, m.ID, repository.MovieUpdate{Rating: &rating}))

	got, err := movies.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 9.5, got.Rating)
	require.Equal(t, "Inception", got.Title)
	require.Equal(t, "Christopher Nolan", got.Director)
	require.Equal(t, 2010, got.Year)
	require.Equal(t, id, got.UserID)
}

func TestMovieRepo_Update_ZeroValuesAreWritable(t *testing.T) {
	users, movies := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, "Johnny Ponny")
	require.NoError(t, err)
	m := addInception(t, movies, id)

	rating := 0.0
	year := 0
	require.NoError(t, movies.Update(ctx, m.ID, repository.MovieUpdate{Rating: &rating, Year: &year}))

	got, err := movies.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, got.Rating)
	require.Equal(t, 0, got.Year)
}

func TestMovieRepo_Update_NoFieldsIsNoOp(t *testing.T) {
	users, movies := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, "Johnny Ponny")
	require.NoError(t, err)
	m := addInception(t, movies, id)

	require.NoError(t, movies.Update(ctx, m.ID, repository.MovieUpdate{}))

	got, err := movies.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestMovieRepo_Update_NotFound(t *testing.T) {
	_, movies := newRepos(t)

	title := "Anything"
	err := movies.Update(context.Background(), 31337, repository.MovieUpdate{Title: &title})
	require.ErrorIs(t, err, repository.ErrMovieNotFound)
}

func TestMovieRepo_Delete_UnknownIDIsNoOp(t *testing.T) {
	_, movies := newRepos(t)
	require.NoError(t, movies.Delete(context.Background(), 424242))
}

func TestMovieRepo_Delete_RemovesRow(t *testing.T) {
	users, movies := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, "Johnny Ponny")
	require.NoError(t, err)
	m := addInception(t, movies, id)

	require.NoError(t, movies.Delete(ctx, m.ID))

	_, err = movies.GetByID(ctx, m.ID)
	require.ErrorIs(t, err, repository.ErrMovieNotFound)
}
