package selection

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresConnectorRequiresDSN(t *testing.T) {
	_, err := NewPostgresConnector("").Connect(context.Background())
	assert.EqualError(t, err, "postgres: DATABASE_URL is not set")
}

func TestPostgresRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := NewPostgresConnector(dsn).Connect(ctx)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping(ctx))

	id := uuid.NewString()
	require.NoError(t, db.CreateDocument(ctx, Document{ID: id, Query: "q", TopConf: -1}))

	ok, err := db.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.Exists(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}
