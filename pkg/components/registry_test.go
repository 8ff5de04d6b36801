package components_test

import (
	"testing"

	"github.com/aretw0/overlay/pkg/components"
	"github.com/aretw0/overlay/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *components.Registry {
	return components.NewRegistry().
		Register("lead", P2).
		Register("quiet", P3).
		RegisterTransform("headless", func(in components.Map) components.Map {
			delete(in, "heading1")
			return in
		})
}

func TestRegistry_Frame(t *testing.T) {
	reg := newRegistry()
	inherited := components.Map{"paragraph": P1, "heading1": H1}

	t.Run("Nil", func(t *testing.T) {
		f, err := reg.Frame(nil)
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("Literal", func(t *testing.T) {
		f, err := reg.Frame(&domain.Override{Components: map[string]string{"paragraph": "lead"}})
		require.NoError(t, err)
		assert.Equal(t, components.Map{"paragraph": P2, "heading1": H1}, components.Resolve(inherited, f))
	})

	t.Run("IsolatedLiteral", func(t *testing.T) {
		f, err := reg.Frame(&domain.Override{Components: map[string]string{"paragraph": "quiet"}, Isolate: true})
		require.NoError(t, err)
		assert.Equal(t, components.Map{"paragraph": P3}, components.Resolve(inherited, f))
	})

	t.Run("Transform", func(t *testing.T) {
		f, err := reg.Frame(&domain.Override{Transform: "headless"})
		require.NoError(t, err)
		assert.Equal(t, components.Map{"paragraph": P1}, components.Resolve(inherited, f))
	})

	t.Run("IsolateOnly", func(t *testing.T) {
		f, err := reg.Frame(&domain.Override{Isolate: true})
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Empty(t, components.Resolve(inherited, f))
	})
}

func TestRegistry_FrameErrors(t *testing.T) {
	reg := newRegistry()

	_, err := reg.Frame(&domain.Override{Components: map[string]string{"paragraph": "missing"}})
	assert.ErrorIs(t, err, components.ErrUnknownComponent)

	_, err = reg.Frame(&domain.Override{Transform: "missing"})
	assert.ErrorIs(t, err, components.ErrUnknownTransform)

	_, err = reg.Frame(&domain.Override{Components: map[string]string{"paragraph": "lead"}, Transform: "headless"})
	assert.ErrorIs(t, err, components.ErrAmbiguousOverride)
}

func TestRegistry_Names(t *testing.T) {
	comps, transforms := newRegistry().Names()
	assert.Equal(t, []string{"lead", "quiet"}, comps)
	assert.Equal(t, []string{"headless"}, transforms)
}

func TestRegistry_NilTransform(t *testing.T) {
	reg := components.NewRegistry().RegisterTransform("noop", nil)

	f, err := reg.Frame(&domain.Override{Transform: "noop"})
	require.NoError(t, err)

	inherited := components.Map{"paragraph": P1}
	require.NotPanics(t, func() {
		assert.Equal(t, inherited, components.Resolve(inherited, f))
	})
}
