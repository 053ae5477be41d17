package keys

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveContextOrderIndependent(t *testing.T) {
	a := map[string]any{"project_id": "p1", "user": "alice", "depth": 3}
	b := map[string]any{"depth": 3, "user": "alice", "project_id": "p1"}

	assert.Equal(t, Derive("summarize this", a), Derive("summarize this", b))
}

func TestDeriveDeterministic(t *testing.T) {
	k1 := Derive("refactor the auth module", map[string]any{"project_id": "p1"})
	k2 := Derive("refactor the auth module", map[string]any{"project_id": "p1"})
	assert.Equal(t, k1, k2)
}

func TestDeriveDistinctInputs(t *testing.T) {
	ctx := map[string]any{"project_id": "p1"}
	seen := make(map[Key]string)
	for i := 0; i < 1000; i++ {
		text := fmt.Sprintf("task number %d", i)
		k := Derive(text, ctx)
		prev, dup := seen[k]
		require.False(t, dup, "collision between %q and %q", prev, text)
		seen[k] = text
	}
}

func TestDeriveContextChangesKey(t *testing.T) {
	base := Derive("task", map[string]any{"project_id": "p1"})
	assert.NotEqual(t, base, Derive("task", map[string]any{"project_id": "p2"}))
	assert.NotEqual(t, base, Derive("task", nil))
}

func TestDeriveDelimitersInValues(t *testing.T) {
	// A value containing the pair framing must not collide with two
	// separate pairs spelling the same bytes.
	k1 := Derive("task", map[string]any{"a": "1;1:b=1:2"})
	k2 := Derive("task", map[string]any{"a": "1", "b": "2"})
	assert.NotEqual(t, k1, k2)

	// Nor may name/value boundaries shift.
	assert.NotEqual(t,
		Derive("task", map[string]any{"ab": "c"}),
		Derive("task", map[string]any{"a": "bc"}))
}

func TestDeriveNilAndEmptyContextEqual(t *testing.T) {
	assert.Equal(t, Derive("task", nil), Derive("task", map[string]any{}))
}

func TestKeyString(t *testing.T) {
	s := Derive("task", nil).String()
	assert.Len(t, s, 32) // 128 bits hex-encoded
}
