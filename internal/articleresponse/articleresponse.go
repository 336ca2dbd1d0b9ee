package articleresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/userpayload"
)

// ArticleResponse is the response payload for the Article data model.
//
// In the ArticleResponse object, first a Render() is called on itself,
// then the next field, and so on, all the way down the tree.
type ArticleResponse struct {
	*model.Article

	User *userpayload.UserPayload `json:"user,omitempty"`
}

func NewArticleListResponse(articles []model.Article) []render.Renderer {
	list := make([]render.Renderer, 0, len(articles))
	for i := range articles {
		list = append(list, NewArticleResponse(&articles[i]))
	}

	return list
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	resp := &ArticleResponse{Article: article}

	if article.OwnerID != 0 {
		resp.User = userpayload.NewUserPayloadResponse(&model.User{
			ID:       article.OwnerID,
			Username: article.OwnerName,
		})
	}

	return resp
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.Authors == nil {
		rd.Authors = []model.Author{}
	}
	if rd.Tags == nil {
		rd.Tags = []model.Tag{}
	}

	return nil
}

type AuthorResponse struct {
	*model.Author
}

func (*AuthorResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

func NewAuthorListResponse(authors []model.Author) []render.Renderer {
	list := make([]render.Renderer, 0, len(authors))
	for i := range authors {
		list = append(list, &AuthorResponse{Author: &authors[i]})
	}

	return list
}

type TagResponse struct {
	*model.Tag
}

func (*TagResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

func NewTagListResponse(tags []model.Tag) []render.Renderer {
	list := make([]render.Renderer, 0, len(tags))
	for i := range tags {
		list = append(list, &TagResponse{Tag: &tags[i]})
	}

	return list
}
