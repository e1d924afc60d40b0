package gen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDIsUniqueV4(t *testing.T) {
	g := UUID()
	a, b := g.Next(), g.Next()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestSequence(t *testing.T) {
	g := Sequence("t")
	assert.Equal(t, "t-1", g.Next())
	assert.Equal(t, "t-2", g.Next())
}

func TestNilGenerator(t *testing.T) {
	var g IDGenerator
	assert.Equal(t, uuid.Nil.String(), g.Next())
}
