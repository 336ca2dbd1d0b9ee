package articlerequest

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

// ArticleRequest is the request payload for creating or replacing an
// Article. Authors and Tags are ids of existing rows.
type ArticleRequest struct {
	Title           string     `json:"title"`
	Abstract        string     `json:"abstract"`
	PublicationDate model.Date `json:"publication_date"`
	Authors         []int64    `json:"authors"`
	Tags            []int64    `json:"tags"`
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	a.Title = strings.TrimSpace(a.Title)

	return validation.ValidateStruct(a,
		validation.Field(&a.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&a.Abstract, validation.Required),
		validation.Field(&a.Authors, validation.Each(validation.Min(int64(1)))),
		validation.Field(&a.Tags, validation.Each(validation.Min(int64(1)))),
	)
}

// Article returns the payload as a model owned by ownerID.
func (a *ArticleRequest) Article(ownerID int64) model.Article {
	return model.Article{
		Title:           a.Title,
		Abstract:        a.Abstract,
		PublicationDate: a.PublicationDate,
		OwnerID:         ownerID,
	}
}

// NameRequest creates an Author or a Tag.
type NameRequest struct {
	Name string `json:"name"`
}

func (n *NameRequest) Bind(r *http.Request) error {
	n.Name = strings.TrimSpace(n.Name)

	return validation.ValidateStruct(n,
		validation.Field(&n.Name, validation.Required, validation.Length(1, 255)),
	)
}
