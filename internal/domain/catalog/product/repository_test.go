package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
)

func seedRepo(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()
	repo := NewRepository()

	large := NewProduct("A100", "Sushi Tray Large")
	large.Category = "Trays"
	small := NewProduct("A101", "Sushi Tray Small")
	small.Category = "Trays"
	film := NewProduct("B200", "Cling Film 30cm")
	film.Category = "Film"

	require.NoError(t, repo.Load(ctx, []*Product{large, small, film}))
	return repo
}

func TestRepository_Search(t *testing.T) {
	repo := seedRepo(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"terms across fields", "sushi large", []string{"A100"}},
		{"no match", "sushi cling", nil},
		{"category term", "trays", []string{"A100", "A101"}},
		{"empty query returns all", "", []string{"A100", "A101", "B200"}},
		{"sku prefix", "b2", []string{"B200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.Search(tt.query, 0)
			var skus []string
			for _, p := range got {
				skus = append(skus, p.Code)
			}
			assert.Equal(t, tt.want, skus)
		})
	}
}

func TestRepository_SearchLimit(t *testing.T) {
	repo := seedRepo(t)
	assert.Len(t, repo.Search("", 2), 2)
}

func TestRepository_SearchSkipsDeleted(t *testing.T) {
	repo := seedRepo(t)
	p, err := repo.BySKU("A100")
	require.NoError(t, err)
	p.MarkDeleted()

	got := repo.Search("sushi", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "A101", got[0].Code)
}

func TestRepository_DuplicateSKU(t *testing.T) {
	repo := seedRepo(t)
	err := repo.Add(context.Background(), NewProduct("A100", "Duplicate"))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestRepository_BySKUNotFound(t *testing.T) {
	repo := seedRepo(t)
	_, err := repo.BySKU("Z999")
	assert.True(t, apperror.IsNotFound(err))
}

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	p := NewProduct("A100", "Sushi Tray Large")
	assert.NoError(t, p.Validate(ctx))

	missingName := NewProduct("A100", "")
	assert.Error(t, missingName.Validate(ctx))

	badPack := NewProduct("A100", "Sushi Tray Large")
	badPack.CasePack = -1
	assert.Error(t, badPack.Validate(ctx))
}
