package repository_test

import (
	"context"
	"testing"

	"github.com/sakif/jokebox/internal/model"
	"github.com/sakif/jokebox/internal/repository"
	"github.com/sakif/jokebox/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_LoadsBuiltInJokesInOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, repository.Seed(ctx, store))

	jokes, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jokes, 15)

	for i, j := range jokes {
		assert.Equal(t, int64(i+1), j.ID)
		assert.NotEmpty(t, j.Text)
		assert.NotEmpty(t, j.Category)
	}
	assert.Equal(t, "Science", jokes[0].Category)
	assert.Equal(t, "What do you call a fake noodle? An impasta!", jokes[6].Text)
}

func TestSeed_SkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Append(ctx, &model.Joke{Text: "already here", Category: model.DefaultCategory}))

	require.NoError(t, repository.Seed(ctx, store))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSeed_DoesNotMutateSeedList(t *testing.T) {
	require.NoError(t, repository.Seed(context.Background(), memory.New()))

	for _, j := range repository.SeedJokes {
		assert.Zero(t, j.ID)
	}
}
