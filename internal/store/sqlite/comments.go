package sqlite

import (
	"context"
	"fmt"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

const commentSelect = `
SELECT c.id, c.content, ac.article_id, u.id, u.username
FROM comments c
JOIN article_comments ac ON ac.comment_id = c.id
JOIN user_comments uc ON uc.comment_id = c.id
JOIN users u ON u.id = uc.user_id`

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = exists(ctx, tx, "articles", comment.ArticleID); err != nil {
		return 0, fmt.Errorf("article %d: %w", comment.ArticleID, err)
	}
	if err = exists(ctx, tx, "users", comment.UserID); err != nil {
		return 0, fmt.Errorf("user with id %d: %w", comment.UserID, err)
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO comments (content) VALUES (?)`, comment.Content)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO article_comments (article_id, comment_id) VALUES (?, ?)`, comment.ArticleID, id); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO user_comments (user_id, comment_id) VALUES (?, ?)`, comment.UserID, id); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	comment.ID = id
	return id, nil
}

func (s *Store) GetComment(ctx context.Context, id int64) (model.Comment, error) {
	comments, err := s.queryComments(ctx, commentSelect+"\nWHERE c.id = ?", id)
	if err != nil {
		return model.Comment{}, err
	}
	if len(comments) == 0 {
		return model.Comment{}, store.ErrNotFound
	}
	return comments[0], nil
}

func (s *Store) ListCommentsByArticle(ctx context.Context, articleID int64) ([]model.Comment, error) {
	return s.queryComments(ctx, commentSelect+"\nWHERE ac.article_id = ?\nORDER BY c.id", articleID)
}

func (s *Store) UpdateComment(ctx context.Context, userID, commentID int64, content string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = checkOwner(ctx, tx, `SELECT user_id FROM user_comments WHERE comment_id = ?`, commentID, userID); err != nil {
		return fmt.Errorf("comment %d: %w", commentID, err)
	}
	if _, err = tx.ExecContext(ctx, `UPDATE comments SET content = ? WHERE id = ?`, content, commentID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteComment(ctx context.Context, userID, commentID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = checkOwner(ctx, tx, `SELECT user_id FROM user_comments WHERE comment_id = ?`, commentID, userID); err != nil {
		return fmt.Errorf("comment %d: %w", commentID, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, commentID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) queryComments(ctx context.Context, query string, args ...any) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.ArticleID, &c.UserID, &c.Username); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
