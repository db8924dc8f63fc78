package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"createdat", "updatedat", 3},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestNormalize(t *testing.T) {
	for _, in := range []string{"Book_ID", "bookId", "book-id", "BOOK ID"} {
		assert.Equal(t, "bookid", Normalize(in), in)
	}
}

func TestScore(t *testing.T) {
	assert.InDelta(t, 1.0, Score("bookID", "book_id"), 1e-9)
	assert.InDelta(t, 1.0, Score("", ""), 1e-9)
	assert.InDelta(t, 0.0, Score("abc", "xyz"), 1e-9)
	assert.Greater(t, Score("Autor", "Author"), Score("Autor", "Book"))
}

func TestRank(t *testing.T) {
	ranked := Rank("Titel", []string{"Rating", "Title", "Tags", "Title"})

	assert.Len(t, ranked, 3)
	assert.Equal(t, "Title", ranked[0].Name)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"Author", "Book", "Entity", "Page"}

	assert.Equal(t, []string{"Author"}, Suggest("Autor", candidates, 1))
	assert.Empty(t, Suggest("Zebra", candidates, 3))
	assert.Empty(t, Suggest("Book", candidates, 3), "exact match is not a suggestion")
	assert.Equal(t, []string{"Book"}, Suggest("book", candidates, 3))
}
