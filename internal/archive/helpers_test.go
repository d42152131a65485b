package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestGroupReplyPairs(t *testing.T) {
	t.Run("pairs translations with their reply", func(t *testing.T) {
		comments := []Text{
			{ID: 1, Type: TextTypeReply, Content: "a"},
			{ID: 2, Type: TextTypeReply, Content: "b"},
			{ID: 3, Type: TextTypeTranslation, Content: "b-en", ParentCommentID: intPtr(2)},
			{ID: 4, Type: TextTypeTranslation, Content: "a-en", ParentCommentID: intPtr(1)},
		}

		pairs := GroupReplyPairs(comments)
		assert.Len(t, pairs, 2)
		assert.Equal(t, "a", pairs[0].Main.Content)
		assert.Equal(t, "a-en", pairs[0].Translation.Content)
		assert.Equal(t, "b", pairs[1].Main.Content)
		assert.Equal(t, "b-en", pairs[1].Translation.Content)
	})

	t.Run("translation seen before its reply", func(t *testing.T) {
		pairs := GroupReplyPairs([]Text{
			{ID: 9, Type: TextTypeTranslation, Content: "en", ParentCommentID: intPtr(5)},
			{ID: 5, Type: TextTypeReply, Content: "th"},
		})
		assert.Len(t, pairs, 1)
		assert.Equal(t, 5, pairs[0].Main.ID)
		assert.Equal(t, 9, pairs[0].Translation.ID)
	})

	t.Run("orphan translation dropped", func(t *testing.T) {
		pairs := GroupReplyPairs([]Text{
			{ID: 3, Type: TextTypeTranslation, ParentCommentID: intPtr(77)},
			{ID: 4, Type: TextTypeReply},
		})
		assert.Len(t, pairs, 1)
		assert.Equal(t, 4, pairs[0].Main.ID)
		assert.Nil(t, pairs[0].Translation)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, GroupReplyPairs(nil))
	})
}

func TestOrderAuthors(t *testing.T) {
	authors := []Author{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: " mim "},
		{ID: 3, Name: "Bob"},
		{ID: 4, Name: "VIEW"},
		{ID: 5, Name: "Mim"},
	}

	got := OrderAuthors(authors, []string{"view", "mim"})

	ids := make([]int, len(got))
	for i, a := range got {
		ids[i] = a.ID
	}
	assert.Equal(t, []int{4, 2, 1, 3}, ids, "pinned first, duplicates of pinned names dropped")

	assert.Nil(t, OrderAuthors(nil, []string{"view"}))
	assert.Equal(t, authors, OrderAuthors(authors, nil))
}

func TestFindAuthor(t *testing.T) {
	authors := []Author{{ID: 1, Name: "View"}, {ID: 2, Name: "Mim"}}

	a, ok := FindAuthor(authors, " mim ")
	assert.True(t, ok)
	assert.Equal(t, 2, a.ID)

	_, ok = FindAuthor(authors, "nobody")
	assert.False(t, ok)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"live", "tour", "bkk"}, ParseTags("live, tour,, bkk ,live"))
	assert.Equal(t, []string{}, ParseTags(""))
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("   "))
	v := OptionalString(" x ")
	if assert.NotNil(t, v) {
		assert.Equal(t, "x", *v)
	}
}
