package books

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/librarylite/internal/common"
	"github.com/dmitrijs2005/librarylite/internal/server/models"
	"github.com/dmitrijs2005/librarylite/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSQLiteRepository_CRUD(t *testing.T) {
	repo := NewSQLiteRepository(repotest.NewSQLiteDB(t))
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	repo.now = func() time.Time { return created }
	ctx := context.Background()

	b, err := repo.Create(ctx, &models.Book{Title: "Clean Code", Author: "Robert C. Martin", Year: ptr(2008)})
	require.NoError(t, err)
	require.NotZero(t, b.ID)

	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", got.Title)
	assert.Nil(t, got.Description)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2008, *got.Year)
	assert.True(t, got.CreatedAt.Equal(created))

	updated := created.Add(time.Hour)
	repo.now = func() time.Time { return updated }
	got.Description = ptr("A handbook of agile software craftsmanship")
	got, err = repo.Update(ctx, got)
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(updated))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.Get(ctx, b.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_MissingRows(t *testing.T) {
	repo := NewSQLiteRepository(repotest.NewSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.Update(ctx, &models.Book{ID: 99, Title: "T", Author: "A"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 99), common.ErrorNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
