package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList{"newborn care", "homework help"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["newborn care","homework help"]`, v)

	// nil lists are stored as an empty array, never as NULL
	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["a, with comma","b"]`))
	assert.Equal(t, StringList{"a, with comma", "b"}, l)

	require.NoError(t, l.Scan([]byte(`["x"]`)))
	assert.Equal(t, StringList{"x"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	require.NoError(t, l.Scan(""))
	assert.Empty(t, l)

	assert.Error(t, l.Scan(12))
}
