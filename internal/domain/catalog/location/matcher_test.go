package location

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
)

func TestFilterBins_Variants(t *testing.T) {
	bin := NewBin("G", 1, "1")
	require.Equal(t, "G-01-1", bin.Code)

	bins := []*Bin{bin}

	matching := []string{"g11", "g011", "G-01-1", "g1", "g-01", "  g 11 "}
	for _, term := range matching {
		t.Run("matches "+term, func(t *testing.T) {
			assert.Len(t, FilterBins(bins, term), 1)
		})
	}

	for _, term := range []string{"g22", "a11", "g012"} {
		t.Run("rejects "+term, func(t *testing.T) {
			assert.Empty(t, FilterBins(bins, term))
		})
	}
}

func TestFilterBins_UnpaddedBays(t *testing.T) {
	// Bay 12 has no padding; both spellings must resolve.
	bin := NewBin("A", 12, "3")
	require.Equal(t, "A-12-3", bin.Code)

	assert.Len(t, FilterBins([]*Bin{bin}, "a123"), 1)
	assert.Len(t, FilterBins([]*Bin{bin}, "a12"), 1)
	assert.Empty(t, FilterBins([]*Bin{bin}, "a13"))
}

func TestFilterBins_MissingCodeExcluded(t *testing.T) {
	coded := NewBin("G", 1, "1")
	uncoded := &Bin{Rack: "G", Bay: 1, Level: "2"} // no Code set

	got := FilterBins([]*Bin{uncoded, coded}, "")
	require.Len(t, got, 1)
	assert.Same(t, coded, got[0])
}

func TestFilterBins_PreservesOrder(t *testing.T) {
	a := NewBin("G", 1, "1")
	b := NewBin("G", 1, "2")
	c := NewBin("G", 2, "1")

	got := FilterBins([]*Bin{a, b, c}, "g1")
	require.Len(t, got, 2)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
}

func TestRepository_Resolve(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.Load(ctx, []*Bin{
		NewBin("G", 1, "1"),
		NewBin("G", 1, "2"),
		NewBin("A", 2, "1"),
	}))

	t.Run("exact code", func(t *testing.T) {
		b, err := repo.Resolve("G-01-1")
		require.NoError(t, err)
		assert.Equal(t, "G-01-1", b.Code)
	})

	t.Run("shorthand", func(t *testing.T) {
		b, err := repo.Resolve("a21")
		require.NoError(t, err)
		assert.Equal(t, "A-02-1", b.Code)
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := repo.Resolve("g1")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeAmbiguousBin, appErr.Code)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := repo.Resolve("z99")
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestZoneName(t *testing.T) {
	assert.Equal(t, "General", ZoneName("G"))
	assert.Equal(t, "Frozen", ZoneName("F"))
	assert.Equal(t, "X", ZoneName("X"))
}
