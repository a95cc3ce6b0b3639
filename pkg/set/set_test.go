package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	assert := assert.New(t)
	s := SetOf("b", "a")
	assert.True(s.Contains("a"))
	assert.False(s.Contains("c"))

	assert.True(s.AddNew("c"))
	assert.False(s.AddNew("c"))
	assert.Equal(3, s.Len())
	assert.Equal([]string{"a", "b", "c"}, Sorted(s))
	assert.ElementsMatch([]string{"a", "b", "c"}, s.ToSlice())
}
