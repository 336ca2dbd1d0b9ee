//go:build integration

package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var c = Client{
	Addr:   "http://localhost:3333",
	Client: http.Client{},
}

func TestPing(t *testing.T) {
	s, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pong", s)
}
