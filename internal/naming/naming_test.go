package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocator(t *testing.T) {
	var a Allocator

	assert.Equal(t, "n1", a.Entity())

	n, p := a.Pair()
	assert.Equal(t, "n2", n)
	assert.Equal(t, "p2", p)

	tgt, p := a.Target()
	assert.Equal(t, "t3", tgt)
	assert.Equal(t, "p3", p)

	assert.Equal(t, "n4", a.Entity())
}

func TestAllocator_NeverRepeats(t *testing.T) {
	var a Allocator
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		var names []string
		switch i % 3 {
		case 0:
			names = []string{a.Entity()}
		case 1:
			n, p := a.Pair()
			names = []string{n, p}
		default:
			tgt, p := a.Target()
			names = []string{tgt, p}
		}
		for _, name := range names {
			assert.False(t, seen[name], "duplicate binding %s", name)
			assert.NotEqual(t, Canonical, name)
			seen[name] = true
		}
	}
}
