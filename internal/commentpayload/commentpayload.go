package commentpayload

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

type CommentRequest struct {
	Content string `json:"content"`
}

func (c *CommentRequest) Bind(r *http.Request) error {
	c.Content = strings.TrimSpace(c.Content)

	return validation.ValidateStruct(c,
		validation.Field(&c.Content, validation.Required, validation.Length(1, 4000)),
	)
}

type CommentResponse struct {
	*model.Comment
}

func (*CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewCommentListResponse(comments []model.Comment) []render.Renderer {
	list := make([]render.Renderer, 0, len(comments))
	for i := range comments {
		list = append(list, &CommentResponse{Comment: &comments[i]})
	}

	return list
}
