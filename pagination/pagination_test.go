package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/pagination"
)

func TestNew(t *testing.T) {
	tcs := []struct {
		name     string
		total    int
		perPage  int
		page     int
		expected pagination.Pager
	}{
		{"empty", 0, 10, 1, pagination.Pager{Page: 1, PerPage: 10, TotalItems: 0, TotalPages: 1}},
		{"exact", 20, 10, 2, pagination.Pager{Page: 2, PerPage: 10, TotalItems: 20, TotalPages: 2}},
		{"ceiling", 25, 10, 1, pagination.Pager{Page: 1, PerPage: 10, TotalItems: 25, TotalPages: 3}},
		{"past-end", 25, 10, 4, pagination.Pager{Page: 3, PerPage: 10, TotalItems: 25, TotalPages: 3}},
		{"before-start", 25, 10, -2, pagination.Pager{Page: 1, PerPage: 10, TotalItems: 25, TotalPages: 3}},
		{"zero-per-page", 3, 0, 1, pagination.Pager{Page: 1, PerPage: 1, TotalItems: 3, TotalPages: 3}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := pagination.New(tc.total, tc.perPage, tc.page)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestPagerLastPage(t *testing.T) {
	// Arrange
	p := pagination.New(25, 10, 3)

	// Assert
	require.Equal(t, 3, p.TotalPages)
	require.False(t, p.HasNext())
	require.Equal(t, 3, p.Next())
	require.True(t, p.HasPrev())
	require.Equal(t, 2, p.Prev())
}

func TestPagerFirstPage(t *testing.T) {
	// Arrange
	p := pagination.New(25, 10, 1)

	// Assert
	require.True(t, p.HasNext())
	require.Equal(t, 2, p.Next())
	require.False(t, p.HasPrev())
}

func labels(items []pagination.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label()
		if it.Current {
			out[i] = "[" + out[i] + "]"
		}
	}

	return out
}

func TestPagerItems(t *testing.T) {
	tcs := []struct {
		name     string
		total    int
		page     int
		expected []string
	}{
		{"single", 5, 1, []string{"[1]"}},
		{"two", 15, 2, []string{"1", "[2]"}},
		{"three-first", 25, 1, []string{"[1]", "2", "3"}},
		{"three-last", 25, 3, []string{"1", "2", "[3]"}},
		{"many-start", 100, 1, []string{"[1]", "2", "...", "10"}},
		{"many-middle", 100, 5, []string{"1", "...", "4", "[5]", "6", "...", "10"}},
		{"many-end", 100, 10, []string{"1", "...", "9", "[10]"}},
		{"many-near-start", 100, 3, []string{"1", "2", "[3]", "4", "...", "10"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := pagination.New(tc.total, 10, tc.page).Items()

			// Assert
			require.Equal(t, tc.expected, labels(actual))
		})
	}
}
