// SPDX-License-Identifier: EPL-2.0

package soundbind_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/soundbind"
	"github.com/ik5/soundbind/dom"
)

func TestUseSound_OverridesWin(t *testing.T) {
	t.Parallel()

	engine := &instantEngine{}
	hover := soundbind.UseSound(engine, []string{"hover.ogg"}, "mouseenter", "mouseleave",
		soundbind.WithVolume(0.5),
		soundbind.WithLoop(true),
		soundbind.WithExtra("rate", 1.0),
	)

	plain, err := hover(dom.New("a"))
	require.NoError(t, err)
	defer plain.Destroy()

	cfg := plain.Config()
	require.Equal(t, []string{"hover.ogg"}, cfg.Source)
	require.Equal(t, "mouseenter", cfg.PlayEvent)
	require.Equal(t, "mouseleave", cfg.StopEvent)
	require.Equal(t, 0.5, cfg.Volume)
	require.True(t, cfg.Loop)

	loud, err := hover(dom.New("b"),
		soundbind.WithVolume(0.9),
		soundbind.WithExtra("rate", 2.0),
		soundbind.WithEvents("click", ""),
	)
	require.NoError(t, err)
	defer loud.Destroy()

	cfg = loud.Config()
	require.Equal(t, 0.9, cfg.Volume)
	require.True(t, cfg.Loop)
	require.Equal(t, 2.0, cfg.Extra["rate"])
	require.Equal(t, "click", cfg.PlayEvent)
	require.Empty(t, cfg.StopEvent)

	// Overrides for one element never leak into the template.
	again, err := hover(dom.New("c"))
	require.NoError(t, err)
	defer again.Destroy()
	require.Equal(t, 1.0, again.Config().Extra["rate"])
}

func TestUseSound_DefaultsVolume(t *testing.T) {
	t.Parallel()

	click := soundbind.UseSound(&instantEngine{}, []string{"click.wav"}, "click", "")
	b, err := click(dom.New("a"))
	require.NoError(t, err)
	defer b.Destroy()

	require.Equal(t, soundbind.DefaultVolume, b.Config().Volume)
	require.False(t, b.Config().Loop)
}

func TestManagerUseSound_Registers(t *testing.T) {
	t.Parallel()

	m := soundbind.NewManager(&instantEngine{})
	click := m.UseSound([]string{"click.wav"}, "click", "")

	node := dom.New("a")
	b, err := click(node)
	require.NoError(t, err)

	got, ok := m.Lookup(node)
	require.True(t, ok)
	require.Same(t, b, got)

	_, err = click(node)
	require.ErrorIs(t, err, soundbind.ErrAlreadyBound)
	require.NoError(t, m.Close())
}
