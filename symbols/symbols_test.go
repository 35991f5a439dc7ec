package symbols

import (
	"testing"

	"github.com/dekarrin/ictiobus/icterrors"
	"github.com/stretchr/testify/assert"
)

func Test_Collection_AddTerminal(t *testing.T) {
	testCases := []struct {
		name      string
		add       string
		expectErr bool
	}{
		{name: "ordinary name", add: "id"},
		{name: "reserved name", add: "$weird", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			c := New()
			_, err := c.AddTerminal(tc.add, 0, NoAssoc)
			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Collection_AddTerminal_duplicate(t *testing.T) {
	assert := assert.New(t)
	c := New()
	_, err := c.AddTerminal("id", 0, NoAssoc)
	assert.NoError(err)
	_, err = c.AddTerminal("id", 0, NoAssoc)
	assert.Error(err)
}

func Test_Collection_indices(t *testing.T) {
	assert := assert.New(t)
	c := New()

	ref, ok := c.Lookup(EOF)
	assert.True(ok)
	assert.Equal(Ref{Kind: Terminal, Index: 0}, ref)

	ref, ok = c.Lookup(Root)
	assert.True(ok)
	assert.Equal(Ref{Kind: NonTerminal, Index: 0}, ref)

	tRef, err := c.AddTerminal("id", 0, NoAssoc)
	assert.NoError(err)
	assert.Equal(1, tRef.Index)

	ntRef, err := c.AddNonTerminal("S")
	assert.NoError(err)
	assert.Equal(1, ntRef.Index)
}

func Test_Collection_Seal_noUserTerminals(t *testing.T) {
	assert := assert.New(t)
	c := New()
	_, err := c.AddNonTerminal("S")
	assert.NoError(err)

	_, diags, err := c.Seal()
	assert.NoError(err)
	assert.Len(diags, 1)
	assert.Equal(icterrors.SeverityWarning, diags[0].Severity)
}

func Test_Collection_Seal_noUserNonTerminals(t *testing.T) {
	assert := assert.New(t)
	c := New()
	_, err := c.AddTerminal("id", 0, NoAssoc)
	assert.NoError(err)

	_, diags, err := c.Seal()
	assert.Error(err)
	if assert.Len(diags, 1) {
		assert.Equal(icterrors.SeverityError, diags[0].Severity)
	}
}

func Test_Collection_mutateAfterSeal(t *testing.T) {
	assert := assert.New(t)
	c := New()
	_, _, _ = c.Seal()

	_, err := c.AddTerminal("id", 0, NoAssoc)
	assert.Error(err)

	_, err = c.AddNonTerminal("S")
	assert.Error(err)
}
