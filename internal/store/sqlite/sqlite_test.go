package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articlefilter"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	st, err := Open(path)
	require.NoError(t, err, "open store")
	t.Cleanup(func() { _ = st.Close() })
	return st
}

type fixture struct {
	st      *Store
	alice   int64
	bob     int64
	authors map[string]int64
	tags    map[string]int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{st: newTestStore(t), authors: map[string]int64{}, tags: map[string]int64{}}

	var err error
	f.alice, err = f.st.CreateUser(ctx, &model.User{Username: "alice", HashedPassword: "x"})
	require.NoError(t, err)
	f.bob, err = f.st.CreateUser(ctx, &model.User{Username: "bob", HashedPassword: "x"})
	require.NoError(t, err)

	for _, name := range []string{"Ann", "Ben", "Cid"} {
		id, err := f.st.CreateAuthor(ctx, &model.Author{Name: name})
		require.NoError(t, err)
		f.authors[name] = id
	}
	for _, name := range []string{"go", "db", "web"} {
		id, err := f.st.CreateTag(ctx, &model.Tag{Name: name})
		require.NoError(t, err)
		f.tags[name] = id
	}
	return f
}

func (f *fixture) article(t *testing.T, owner int64, title, abstract string, date model.Date, authors, tags []string) int64 {
	t.Helper()
	var authorIDs, tagIDs []int64
	for _, a := range authors {
		authorIDs = append(authorIDs, f.authors[a])
	}
	for _, tg := range tags {
		tagIDs = append(tagIDs, f.tags[tg])
	}
	a := model.Article{Title: title, Abstract: abstract, PublicationDate: date, OwnerID: owner}
	id, err := f.st.CreateArticle(context.Background(), &a, authorIDs, tagIDs)
	require.NoError(t, err)
	return id
}

func titles(articles []model.Article) []string {
	out := []string{}
	for _, a := range articles {
		out = append(out, a.Title)
	}
	return out
}

func TestDuplicateUsername(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, &model.User{Username: "alice", HashedPassword: "h"})
	require.NoError(t, err)
	_, err = st.CreateUser(ctx, &model.User{Username: "alice", HashedPassword: "h"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	u, err := st.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h", u.HashedPassword)

	_, err = st.GetUser(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestArticleLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.article(t, f.alice, "Go tips", "Short abstract", model.NewDate(2023, time.January, 5), []string{"Ann", "Ben", "Ann"}, []string{"go"})

	got, err := f.st.GetArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Go tips", got.Title)
	assert.Equal(t, "2023-01-05", got.PublicationDate.String())
	assert.Equal(t, f.alice, got.OwnerID)
	assert.Equal(t, "alice", got.OwnerName)
	assert.Equal(t, []model.Author{{ID: f.authors["Ann"], Name: "Ann"}, {ID: f.authors["Ben"], Name: "Ben"}}, got.Authors)
	assert.Equal(t, []model.Tag{{ID: f.tags["go"], Name: "go"}}, got.Tags)

	got.Title = "Go tricks"
	require.NoError(t, f.st.UpdateArticle(ctx, f.alice, &got, []int64{f.authors["Cid"]}, nil))

	updated, err := f.st.GetArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Go tricks", updated.Title)
	assert.Equal(t, []model.Author{{ID: f.authors["Cid"], Name: "Cid"}}, updated.Authors)
	assert.Empty(t, updated.Tags)

	require.NoError(t, f.st.DeleteArticle(ctx, f.alice, id))
	_, err = f.st.GetArticle(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateArticleUnknownAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := model.Article{Title: "t", Abstract: "a", OwnerID: f.alice}
	_, err := f.st.CreateArticle(ctx, &a, []int64{f.authors["Ann"], 404}, nil)
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "author with id 404")

	all, err := f.st.FilterArticles(ctx, articlefilter.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all, "failed create must not leave a partial article")
}

func TestArticleOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.article(t, f.alice, "mine", "abs", model.Date{}, nil, nil)
	a, err := f.st.GetArticle(ctx, id)
	require.NoError(t, err)

	a.Title = "stolen"
	assert.ErrorIs(t, f.st.UpdateArticle(ctx, f.bob, &a, nil, nil), store.ErrNotOwner)
	assert.ErrorIs(t, f.st.DeleteArticle(ctx, f.bob, id), store.ErrNotOwner)

	a.ID = 999
	assert.ErrorIs(t, f.st.UpdateArticle(ctx, f.alice, &a, nil, nil), store.ErrNotFound)
	assert.ErrorIs(t, f.st.DeleteArticle(ctx, f.alice, 999), store.ErrNotFound)

	still, err := f.st.GetArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "mine", still.Title)
}

func TestFilterAuthorSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.article(t, f.alice, "ann only", "", model.Date{}, []string{"Ann"}, nil)
	f.article(t, f.alice, "ann and ben", "", model.Date{}, []string{"Ann", "Ben"}, nil)
	f.article(t, f.alice, "all three", "", model.Date{}, []string{"Ann", "Ben", "Cid"}, nil)
	f.article(t, f.alice, "ben only", "", model.Date{}, []string{"Ben"}, nil)

	got, err := f.st.FilterArticles(ctx, articlefilter.Filter{Authors: []string{"Ann", "Ben"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ann and ben", "all three"}, titles(got))

	got, err = f.st.FilterArticles(ctx, articlefilter.Filter{Authors: []string{"Ann", "Nobody"}})
	require.NoError(t, err)
	assert.Empty(t, got)

	// The relations of a matching article are not narrowed by the filter.
	got, err = f.st.FilterArticles(ctx, articlefilter.Filter{Authors: []string{"Cid"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Authors, 3)
}

func TestFilterAuthorsAndTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.article(t, f.alice, "a", "", model.Date{}, []string{"Ann"}, []string{"go", "db"})
	f.article(t, f.alice, "b", "", model.Date{}, []string{"Ann", "Ben"}, []string{"go"})
	f.article(t, f.alice, "c", "", model.Date{}, []string{"Ben"}, []string{"go", "db", "web"})

	got, err := f.st.FilterArticles(ctx, articlefilter.Filter{Authors: []string{"Ann"}, Tags: []string{"go", "db"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, titles(got))

	got, err = f.st.FilterArticles(ctx, articlefilter.Filter{Tags: []string{"db", "go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, titles(got))
}

func TestFilterDateAndKeywords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.article(t, f.alice, "Rust in prod", "memory safety", model.NewDate(2023, time.January, 1), nil, nil)
	f.article(t, f.alice, "Gardening", "tomatoes and GO-karts", model.NewDate(2023, time.February, 1), nil, nil)
	f.article(t, f.alice, "Cooking", "pasta", model.NewDate(2022, time.February, 3), nil, nil)
	f.article(t, f.alice, "Undated", "no date", model.Date{}, nil, nil)

	got, err := f.st.FilterArticles(ctx, articlefilter.Filter{Year: "2023"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust in prod", "Gardening"}, titles(got))

	got, err = f.st.FilterArticles(ctx, articlefilter.Filter{Month: "02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gardening", "Cooking"}, titles(got))

	got, err = f.st.FilterArticles(ctx, articlefilter.Filter{Year: "2023", Month: "02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gardening"}, titles(got))

	got, err = f.st.FilterArticles(ctx, articlefilter.Filter{Keywords: []string{"rust", "go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust in prod", "Gardening"}, titles(got))

	got, err = f.st.FilterArticles(ctx, articlefilter.Filter{Keywords: []string{"%"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		f.article(t, f.alice, fmt.Sprintf("article %d", i), "", model.Date{}, nil, nil)
	}

	seen := map[int64]bool{}
	var total int
	for page := 1; page <= 4; page++ {
		got, err := f.st.FilterArticles(ctx, articlefilter.Filter{Page: page, Limit: 3})
		require.NoError(t, err)
		for _, a := range got {
			assert.False(t, seen[a.ID], "article %d returned twice", a.ID)
			seen[a.ID] = true
		}
		total += len(got)
		if page == 3 {
			assert.Len(t, got, 1)
		}
		if page == 4 {
			assert.Empty(t, got)
		}
	}
	assert.Equal(t, 7, total)

	all, err := f.st.FilterArticles(ctx, articlefilter.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestListArticlesByIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.article(t, f.alice, "a", "", model.Date{}, nil, nil)
	f.article(t, f.alice, "b", "", model.Date{}, nil, nil)
	c := f.article(t, f.bob, "c", "", model.Date{}, nil, nil)

	got, err := f.st.ListArticlesByIDs(ctx, []int64{c, a, 999})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, titles(got))

	got, err = f.st.ListArticlesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCommentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	articleID := f.article(t, f.alice, "a", "", model.Date{}, nil, nil)

	c := model.Comment{ArticleID: articleID, UserID: f.bob, Content: "nice"}
	id, err := f.st.CreateComment(ctx, &c)
	require.NoError(t, err)

	got, err := f.st.GetComment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "nice", got.Content)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, articleID, got.ArticleID)

	assert.ErrorIs(t, f.st.UpdateComment(ctx, f.alice, id, "edited"), store.ErrNotOwner)
	assert.ErrorIs(t, f.st.DeleteComment(ctx, f.alice, id), store.ErrNotOwner)
	require.NoError(t, f.st.UpdateComment(ctx, f.bob, id, "edited"))

	list, err := f.st.ListCommentsByArticle(ctx, articleID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "edited", list[0].Content)

	require.NoError(t, f.st.DeleteComment(ctx, f.bob, id))
	_, err = f.st.GetComment(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = f.st.CreateComment(ctx, &model.Comment{ArticleID: 999, UserID: f.bob, Content: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteArticleRemovesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	articleID := f.article(t, f.alice, "a", "", model.Date{}, []string{"Ann"}, []string{"go"})
	c := model.Comment{ArticleID: articleID, UserID: f.bob, Content: "bye"}
	commentID, err := f.st.CreateComment(ctx, &c)
	require.NoError(t, err)

	require.NoError(t, f.st.DeleteArticle(ctx, f.alice, articleID))

	_, err = f.st.GetComment(ctx, commentID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	authors, err := f.st.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 3, "authors outlive the article")
}
