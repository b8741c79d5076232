package adapters

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 20, 5},
		{42, 0, 1},
		{42, -5, 1},
		{0, 0, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize), "total=%d pageSize=%d", tt.total, tt.pageSize)
	}
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]string{"c", "d"}, 5, 2, 2)

	assert.Equal(t, []string{"c", "d"}, p.Items)
	assert.Equal(t, int64(2), p.Page)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.True(t, p.HasMore)

	last := NewPaginated([]string{"e"}, 5, 2, 4)
	assert.Equal(t, int64(3), last.Page)
	assert.False(t, last.HasMore)

	empty := NewPaginated[string](nil, 0, 10, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, int64(1), empty.Page)
	assert.Equal(t, int64(0), empty.TotalPages)
}

func TestMapPage(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3}, 9, 3, 3)
	mapped := MapPage(p, strconv.Itoa)

	assert.Equal(t, []string{"1", "2", "3"}, mapped.Items)
	assert.Equal(t, p.Page, mapped.Page)
	assert.Equal(t, p.TotalPages, mapped.TotalPages)
	assert.Equal(t, p.HasMore, mapped.HasMore)
}

func TestToQueryResult(t *testing.T) {
	value := 42

	loading := ToQueryResult[int](nil, nil)
	assert.True(t, loading.IsLoading)

	loaded := ToQueryResult(&value, nil)
	assert.False(t, loaded.IsLoading)
	assert.Equal(t, 42, *loaded.Data)

	failed := ToQueryResult[int](nil, errors.New("boom"))
	assert.False(t, failed.IsLoading)
	assert.Equal(t, "boom", failed.Error)
}

func TestToMutationResult(t *testing.T) {
	ok := ToMutationResult("abc", nil)
	assert.True(t, ok.Success)
	assert.Equal(t, "abc", ok.ID)
	assert.Empty(t, ok.Error)

	failed := ToMutationResult("", errors.New("not allowed"))
	assert.False(t, failed.Success)
	assert.Equal(t, "not allowed", failed.Error)
}
