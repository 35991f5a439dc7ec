package automaton

import (
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_Registry_internStartState(t *testing.T) {
	assert := assert.New(t)
	r := NewRegistry()
	assert.Equal(1, r.Len())
	assert.Equal([]grammar.Item{{NT: 0, R: 0, Dot: 0, LA: 0}}, r.Kernel(0))
}

func Test_Registry_internDedupsBySet(t *testing.T) {
	assert := assert.New(t)
	r := NewRegistry()

	k1 := []grammar.Item{{NT: 1, R: 0, Dot: 1, LA: 0}, {NT: 2, R: 0, Dot: 0, LA: 3}}
	k2 := []grammar.Item{{NT: 2, R: 0, Dot: 0, LA: 3}, {NT: 1, R: 0, Dot: 1, LA: 0}}

	id1 := r.Intern(k1)
	id2 := r.Intern(k2)
	assert.Equal(id1, id2)
	assert.Equal(2, r.Len())

	k3 := []grammar.Item{{NT: 1, R: 0, Dot: 1, LA: 0}}
	id3 := r.Intern(k3)
	assert.NotEqual(id1, id3)
	assert.Equal(3, r.Len())
}
