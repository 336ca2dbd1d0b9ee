package articleresponse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

func TestArticleResponseShape(t *testing.T) {
	a := model.Article{ID: 4, Title: "t", Abstract: "x", OwnerID: 2, OwnerName: "bob"}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles/4", nil)
	require.NoError(t, render.Render(w, r, NewArticleResponse(&a)))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, []any{}, body["authors"])
	assert.Equal(t, []any{}, body["tags"])
	assert.Nil(t, body["publication_date"])
	assert.Equal(t, map[string]any{"id": float64(2), "username": "bob"}, body["user"])
}
