package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articlefilter"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

const articleSelect = `
SELECT a.id, a.title, a.abstract, a.publication_date, u.id, u.username
FROM articles a
JOIN user_articles ua ON ua.article_id = a.id
JOIN users u ON u.id = ua.user_id`

// relationBatch bounds the number of bind parameters per relation query.
const relationBatch = 500

func (s *Store) CreateArticle(ctx context.Context, article *model.Article, authorIDs, tagIDs []int64) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = exists(ctx, tx, "users", article.OwnerID); err != nil {
		return 0, fmt.Errorf("user with id %d: %w", article.OwnerID, err)
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO articles (title, abstract, publication_date)
VALUES (?, ?, ?)
`, article.Title, article.Abstract, nullDate(article.PublicationDate))
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO user_articles (user_id, article_id) VALUES (?, ?)`, article.OwnerID, id); err != nil {
		return 0, err
	}
	if err = linkArticle(ctx, tx, id, authorIDs, tagIDs); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	article.ID = id
	return id, nil
}

func (s *Store) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	articles, err := s.queryArticles(ctx, articleSelect+"\nWHERE a.id = ?", id)
	if err != nil {
		return model.Article{}, err
	}
	if len(articles) == 0 {
		return model.Article{}, store.ErrNotFound
	}
	return articles[0], nil
}

func (s *Store) UpdateArticle(ctx context.Context, userID int64, article *model.Article, authorIDs, tagIDs []int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = checkOwner(ctx, tx, `SELECT user_id FROM user_articles WHERE article_id = ?`, article.ID, userID); err != nil {
		return fmt.Errorf("article %d: %w", article.ID, err)
	}
	if _, err = tx.ExecContext(ctx, `
UPDATE articles SET title = ?, abstract = ?, publication_date = ?
WHERE id = ?
`, article.Title, article.Abstract, nullDate(article.PublicationDate), article.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM article_authors WHERE article_id = ?`, article.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = ?`, article.ID); err != nil {
		return err
	}
	if err = linkArticle(ctx, tx, article.ID, authorIDs, tagIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteArticle removes the article, its comments and every link row.
func (s *Store) DeleteArticle(ctx context.Context, userID, articleID int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = checkOwner(ctx, tx, `SELECT user_id FROM user_articles WHERE article_id = ?`, articleID, userID); err != nil {
		return fmt.Errorf("article %d: %w", articleID, err)
	}
	if _, err = tx.ExecContext(ctx, `
DELETE FROM comments
WHERE id IN (SELECT comment_id FROM article_comments WHERE article_id = ?)
`, articleID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, articleID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) FilterArticles(ctx context.Context, filter articlefilter.Filter) ([]model.Article, error) {
	query, args := filter.Query(articleSelect)
	return s.queryArticles(ctx, query, args...)
}

func (s *Store) ListArticlesByIDs(ctx context.Context, ids []int64) ([]model.Article, error) {
	if len(ids) == 0 {
		return []model.Article{}, nil
	}
	query := articleSelect + "\nWHERE a.id IN (" + articlefilter.Placeholders(len(ids)) + ")\nORDER BY a.id"
	return s.queryArticles(ctx, query, int64Args(ids)...)
}

// queryArticles runs an articleSelect based query and fills in authors and
// tags. The article rows are fully read before the relation queries run.
func (s *Store) queryArticles(ctx context.Context, query string, args ...any) ([]model.Article, error) {
	articles, err := s.scanArticles(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := s.loadRelations(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *Store) scanArticles(ctx context.Context, query string, args ...any) ([]model.Article, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		var (
			a    model.Article
			date sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Abstract, &date, &a.OwnerID, &a.OwnerName); err != nil {
			return nil, err
		}
		if date.Valid && date.String != "" {
			d, err := model.ParseDate(date.String)
			if err != nil {
				return nil, fmt.Errorf("article %d: %w", a.ID, err)
			}
			a.PublicationDate = d
		}
		a.Authors = []model.Author{}
		a.Tags = []model.Tag{}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (s *Store) loadRelations(ctx context.Context, articles []model.Article) error {
	index := make(map[int64]int, len(articles))
	ids := make([]int64, 0, len(articles))
	for i, a := range articles {
		index[a.ID] = i
		ids = append(ids, a.ID)
	}

	for start := 0; start < len(ids); start += relationBatch {
		end := start + relationBatch
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]
		in := articlefilter.Placeholders(len(batch))

		err := s.eachRelation(ctx, `
SELECT l.article_id, x.id, x.name
FROM article_authors l
JOIN authors x ON x.id = l.author_id
WHERE l.article_id IN (`+in+`)
ORDER BY x.id
`, batch, func(articleID, id int64, name string) {
			a := &articles[index[articleID]]
			a.Authors = append(a.Authors, model.Author{ID: id, Name: name})
		})
		if err != nil {
			return err
		}

		err = s.eachRelation(ctx, `
SELECT l.article_id, x.id, x.name
FROM article_tags l
JOIN tags x ON x.id = l.tag_id
WHERE l.article_id IN (`+in+`)
ORDER BY x.id
`, batch, func(articleID, id int64, name string) {
			a := &articles[index[articleID]]
			a.Tags = append(a.Tags, model.Tag{ID: id, Name: name})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) eachRelation(ctx context.Context, query string, ids []int64, fn func(articleID, id int64, name string)) error {
	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			articleID, id int64
			name          string
		)
		if err := rows.Scan(&articleID, &id, &name); err != nil {
			return err
		}
		fn(articleID, id, name)
	}
	return rows.Err()
}

// linkArticle attaches authors and tags, failing with store.ErrNotFound on
// the first id that does not exist. Repeated ids are linked once.
func linkArticle(ctx context.Context, tx *sql.Tx, articleID int64, authorIDs, tagIDs []int64) error {
	for _, id := range authorIDs {
		if err := exists(ctx, tx, "authors", id); err != nil {
			return fmt.Errorf("author with id %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO article_authors (article_id, author_id) VALUES (?, ?)`, articleID, id); err != nil {
			return err
		}
	}
	for _, id := range tagIDs {
		if err := exists(ctx, tx, "tags", id); err != nil {
			return fmt.Errorf("tag with id %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO article_tags (article_id, tag_id) VALUES (?, ?)`, articleID, id); err != nil {
			return err
		}
	}
	return nil
}

func nullDate(d model.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

