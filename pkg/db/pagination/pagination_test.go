package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Pagination{}.Normalize(50, 250)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = Pagination{Page: 3, PageSize: 1000}.Normalize(20, 250)
	assert.Equal(t, 250, p.PageSize)
	assert.Equal(t, 500, p.Offset())
}

func TestBuildPageInfo(t *testing.T) {
	info := BuildPageInfo(Pagination{Page: 2, PageSize: 20}, 45)
	assert.Equal(t, 3, info.NumPages)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrevious)

	empty := BuildPageInfo(Pagination{Page: 1, PageSize: 20}, 0)
	assert.Equal(t, 1, empty.NumPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
}

func TestOffsetSaturates(t *testing.T) {
	p := Pagination{Page: 1 << 62, PageSize: 50}
	assert.Equal(t, math.MaxInt, p.Offset())
	assert.Equal(t, 0, Pagination{Page: 3}.Offset())
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Pagination{Page: 1, PageSize: 20}.Check(0))
	assert.NoError(t, Pagination{Page: 3, PageSize: 20}.Check(45))
	assert.ErrorIs(t, Pagination{Page: 4, PageSize: 20}.Check(45), ErrPageOutOfRange)
	assert.ErrorIs(t, Pagination{Page: 1 << 62, PageSize: 20}.Check(45), ErrPageOutOfRange)
	assert.ErrorIs(t, Pagination{Page: 2, PageSize: 20}.Check(0), ErrPageOutOfRange)
}
