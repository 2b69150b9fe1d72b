package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDsAreUniqueAndValid(t *testing.T) {
	gen := NewIDGenerator(WithMachineID(42))

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := gen.ID()
		require.True(t, id.Valid())

		s := id.String()
		require.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
	}
}

func TestIDsAreSortable(t *testing.T) {
	gen := NewDefaultIDGenerator()

	a := gen.ID()
	b := gen.ID()
	assert.True(t, a < b, "expected %d < %d", a, b)
}

func TestGlobalMachineID(t *testing.T) {
	orig := GlobalMachineID()
	defer SetGlobalMachineID(orig)

	require.NoError(t, SetGlobalMachineID(123))
	assert.Equal(t, 123, GlobalMachineID())

	assert.Equal(t, ErrGlobalIDBadVal, SetGlobalMachineID(1024))
	assert.Equal(t, ErrGlobalIDBadVal, SetGlobalMachineID(-1))
}
