package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

func (s *Store) CreateAuthor(ctx context.Context, author *model.Author) (int64, error) {
	id, err := s.insertName(ctx, "authors", author.Name)
	if err != nil {
		return 0, err
	}
	author.ID = id
	return id, nil
}

func (s *Store) GetAuthor(ctx context.Context, id int64) (model.Author, error) {
	var a model.Author
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM authors WHERE id = ?`, id).Scan(&a.ID, &a.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Author{}, store.ErrNotFound
	}
	return a, err
}

func (s *Store) ListAuthors(ctx context.Context) ([]model.Author, error) {
	authors := []model.Author{}
	err := s.listNames(ctx, "authors", func(id int64, name string) {
		authors = append(authors, model.Author{ID: id, Name: name})
	})
	return authors, err
}

func (s *Store) CreateTag(ctx context.Context, tag *model.Tag) (int64, error) {
	id, err := s.insertName(ctx, "tags", tag.Name)
	if err != nil {
		return 0, err
	}
	tag.ID = id
	return id, nil
}

func (s *Store) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = ?`, id).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, store.ErrNotFound
	}
	return t, err
}

func (s *Store) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags := []model.Tag{}
	err := s.listNames(ctx, "tags", func(id int64, name string) {
		tags = append(tags, model.Tag{ID: id, Name: name})
	})
	return tags, err
}

// insertName and listNames serve the two (id, name) tables.
func (s *Store) insertName(ctx context.Context, table, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO `+table+` (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) listNames(ctx context.Context, table string, fn func(id int64, name string)) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM `+table+` ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		fn(id, name)
	}
	return rows.Err()
}
