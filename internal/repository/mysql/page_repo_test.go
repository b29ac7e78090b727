package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikeTreatsWildcardsAsLiterals(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "plain title", escapeLike("plain title"))
}
