package components_test

import (
	"testing"

	"github.com/aretw0/overlay/pkg/components"
	"github.com/stretchr/testify/assert"
)

func TestMemo_ReusesUntilInputsChange(t *testing.T) {
	calls := 0
	frame := components.Override(components.Transform(func(in components.Map) components.Map {
		calls++
		in["paragraph"] = P2
		return in
	}))
	inherited := components.Map{"paragraph": P1, "heading1": H1}

	var memo components.Memo
	assert.True(t, memo.Stale(inherited, frame))

	first := memo.Resolve(inherited, frame)
	second := memo.Resolve(inherited, frame)
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.False(t, memo.Stale(inherited, frame))

	// Same content, new instance: recompute.
	memo.Resolve(inherited.Clone(), frame)
	assert.Equal(t, 2, calls)

	// New frame instance: recompute.
	other := components.Override(frame.Spec)
	memo.Resolve(inherited, other)
	assert.Equal(t, 3, calls)

	memo.Reset()
	assert.True(t, memo.Stale(inherited, other))
}

func TestMemo_NilFrame(t *testing.T) {
	inherited := components.Map{"paragraph": P1}

	var memo components.Memo
	got := memo.Resolve(inherited, nil)
	assert.Equal(t, inherited, got)
	assert.False(t, memo.Stale(inherited, nil))
}
