package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

const (
	ContentType = "text/csv"
	Filename    = "articles.csv"
)

var articleHeader = []string{"id", "title", "abstract"}

// WriteArticles writes one id,title,abstract row per article after a header row.
func WriteArticles(w io.Writer, articles []model.Article) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(articleHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, a := range articles {
		if err := cw.Write([]string{strconv.FormatInt(a.ID, 10), a.Title, a.Abstract}); err != nil {
			return fmt.Errorf("write article %d: %w", a.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// ServeArticles sends articles as a CSV attachment.
func ServeArticles(w http.ResponseWriter, articles []model.Article) error {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename))
	w.WriteHeader(http.StatusOK)

	return WriteArticles(w, articles)
}
