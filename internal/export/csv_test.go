package export

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

func TestWriteArticlesQuotes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteArticles(&buf, []model.Article{
		{ID: 1, Title: "Plain", Abstract: "simple"},
		{ID: 2, Title: "Comma, inside", Abstract: "has \"quotes\"\nand a newline"},
	})
	require.NoError(t, err)

	assert.Equal(t, "id,title,abstract\n"+
		"1,Plain,simple\n"+
		"2,\"Comma, inside\",\"has \"\"quotes\"\"\nand a newline\"\n", buf.String())
}

func TestServeArticlesHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, ServeArticles(w, []model.Article{{ID: 1, Title: "t", Abstract: "a"}}))

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="articles.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "id,title,abstract\n1,t,a\n", w.Body.String())
}
