// Package seed loads a small sample data set into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/auth"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/store"
)

type sampleArticle struct {
	title, abstract string
	date            model.Date
	owner           int
	author, tag     int
}

var (
	sampleUsers   = [][2]string{{"user1", "password1"}, {"user2", "password2"}}
	sampleAuthors = []string{"Author One", "Author Two"}
	sampleTags    = []string{"Technology", "Health"}

	sampleArticles = []sampleArticle{
		{"Article 1", "Abstract of Article 1", model.NewDate(2023, time.January, 1), 0, 0, 0},
		{"Article 2", "Abstract of Article 2", model.NewDate(2023, time.February, 1), 1, 1, 1},
	}
)

// Run inserts the sample users, authors, tags and articles. It does nothing
// when the first sample user already exists.
func Run(ctx context.Context, s store.Store, a *auth.Service, logger *zap.SugaredLogger) error {
	userIDs := make([]int64, 0, len(sampleUsers))
	for _, creds := range sampleUsers {
		u, err := a.Register(ctx, creds[0], creds[1])
		if errors.Is(err, store.ErrDuplicate) {
			logger.Infow("sample data already present", "username", creds[0])
			return nil
		}
		if err != nil {
			return fmt.Errorf("seed user %q: %w", creds[0], err)
		}
		userIDs = append(userIDs, u.ID)
	}

	authorIDs := make([]int64, 0, len(sampleAuthors))
	for _, name := range sampleAuthors {
		id, err := s.CreateAuthor(ctx, &model.Author{Name: name})
		if err != nil {
			return fmt.Errorf("seed author %q: %w", name, err)
		}
		authorIDs = append(authorIDs, id)
	}

	tagIDs := make([]int64, 0, len(sampleTags))
	for _, name := range sampleTags {
		id, err := s.CreateTag(ctx, &model.Tag{Name: name})
		if err != nil {
			return fmt.Errorf("seed tag %q: %w", name, err)
		}
		tagIDs = append(tagIDs, id)
	}

	for _, sa := range sampleArticles {
		article := model.Article{
			Title:           sa.title,
			Abstract:        sa.abstract,
			PublicationDate: sa.date,
			OwnerID:         userIDs[sa.owner],
		}
		if _, err := s.CreateArticle(ctx, &article, []int64{authorIDs[sa.author]}, []int64{tagIDs[sa.tag]}); err != nil {
			return fmt.Errorf("seed article %q: %w", sa.title, err)
		}
	}

	logger.Infow("sample data loaded",
		"users", len(userIDs), "authors", len(authorIDs), "tags", len(tagIDs), "articles", len(sampleArticles))

	return nil
}
