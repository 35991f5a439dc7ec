package iset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Set_AddHas(t *testing.T) {
	assert := assert.New(t)
	s := New()

	assert.True(s.Add(3))
	assert.False(s.Add(3))
	assert.True(s.Has(3))
	assert.False(s.Has(4))
	assert.Equal(1, s.Len())
}

func Test_Set_Sorted(t *testing.T) {
	assert := assert.New(t)
	s := New(5, 1, 3)
	assert.Equal([]int{1, 3, 5}, s.Sorted())
}

func Test_Set_Union(t *testing.T) {
	assert := assert.New(t)
	a := New(1, 2)
	b := New(2, 3)

	grew := a.Union(b)
	assert.True(grew)
	assert.Equal([]int{1, 2, 3}, a.Sorted())

	grew = a.Union(b)
	assert.False(grew)
}

func Test_Set_Copy(t *testing.T) {
	assert := assert.New(t)
	a := New(1, 2)
	cp := a.Copy()
	cp.Add(3)

	assert.Equal([]int{1, 2}, a.Sorted())
	assert.Equal([]int{1, 2, 3}, cp.Sorted())
}
