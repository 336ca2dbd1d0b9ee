package store

import (
	"context"
	"errors"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articlefilter"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrNotOwner  = errors.New("not owner")
	ErrDuplicate = errors.New("duplicate")
)

type Store interface {
	UserStore
	AuthorStore
	TagStore
	ArticleStore
	CommentStore
	Close() error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
}

type AuthorStore interface {
	CreateAuthor(ctx context.Context, author *model.Author) (int64, error)
	GetAuthor(ctx context.Context, id int64) (model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
}

type TagStore interface {
	CreateTag(ctx context.Context, tag *model.Tag) (int64, error)
	GetTag(ctx context.Context, id int64) (model.Tag, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
}

// ArticleStore mutations take the acting user's id and return ErrNotOwner when
// the article belongs to someone else. Unknown author or tag ids are reported
// as ErrNotFound.
type ArticleStore interface {
	CreateArticle(ctx context.Context, article *model.Article, authorIDs, tagIDs []int64) (int64, error)
	GetArticle(ctx context.Context, id int64) (model.Article, error)
	UpdateArticle(ctx context.Context, userID int64, article *model.Article, authorIDs, tagIDs []int64) error
	DeleteArticle(ctx context.Context, userID, articleID int64) error
	FilterArticles(ctx context.Context, filter articlefilter.Filter) ([]model.Article, error)
	ListArticlesByIDs(ctx context.Context, ids []int64) ([]model.Article, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) (int64, error)
	GetComment(ctx context.Context, id int64) (model.Comment, error)
	ListCommentsByArticle(ctx context.Context, articleID int64) ([]model.Comment, error)
	UpdateComment(ctx context.Context, userID, commentID int64, content string) error
	DeleteComment(ctx context.Context, userID, commentID int64) error
}
