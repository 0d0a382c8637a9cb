package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/hgrep/internal/config"
	"github.com/jpl-au/hgrep/internal/options"
)

// setFlagChanged sets name=value on rootCmd's real flag set (which the
// package-level flag vars are bound to) and marks it Changed, restoring
// both the value and the Changed bit on cleanup.
func setFlagChanged(t *testing.T, name, value string) {
	t.Helper()
	f := rootCmd.Flags().Lookup(name)
	require.NotNil(t, f)
	oldValue := f.Value.String()
	oldChanged := f.Changed

	require.NoError(t, rootCmd.Flags().Set(name, value))

	t.Cleanup(func() {
		require.NoError(t, rootCmd.Flags().Set(name, oldValue))
		f.Changed = oldChanged
	})
}

func TestGridOverride(t *testing.T) {
	oldGrid, oldNoGrid := grid, noGrid
	defer func() { grid, noGrid = oldGrid, oldNoGrid }()

	grid, noGrid = false, false
	_, ok := gridOverride()
	assert.False(t, ok)

	grid, noGrid = true, false
	v, ok := gridOverride()
	assert.True(t, ok)
	assert.True(t, v)

	grid, noGrid = false, true
	v, ok = gridOverride()
	assert.True(t, ok)
	assert.False(t, v)
}

func TestBatStyleGridOverride(t *testing.T) {
	t.Setenv("BAT_STYLE", "")
	_, ok := batStyleGridOverride()
	assert.False(t, ok)

	for _, style := range []string{"plain", "header", "numbers"} {
		t.Setenv("BAT_STYLE", style)
		v, ok := batStyleGridOverride()
		assert.True(t, ok, "style %q", style)
		assert.False(t, v, "style %q", style)
	}

	t.Setenv("BAT_STYLE", "full")
	_, ok = batStyleGridOverride()
	assert.False(t, ok)
}

func TestResolveColorSupport(t *testing.T) {
	v, ok := resolveColorSupport("ansi16")
	assert.True(t, ok)
	assert.Equal(t, options.Ansi16, v)

	v, ok = resolveColorSupport("ansi256")
	assert.True(t, ok)
	assert.Equal(t, options.Ansi256, v)

	v, ok = resolveColorSupport("true")
	assert.True(t, ok)
	assert.Equal(t, options.TrueColor, v)

	_, ok = resolveColorSupport("")
	assert.False(t, ok)
}

func TestResolveOptions_UnpassedFlagsDoNotClobberConfig(t *testing.T) {
	cfgTheme := "dracula"
	cfgTabWidth := 8
	cfg := &config.Config{Theme: &cfgTheme, TabWidth: &cfgTabWidth}

	opts := resolveOptions(rootCmd, cfg)
	// Neither --theme nor --tab was passed in this test, so the config
	// file's values must survive instead of being overwritten by the
	// flag variables' unpassed zero/default values.
	assert.Equal(t, "dracula", opts.Theme)
	assert.Equal(t, 8, opts.TabWidth)
}

func TestResolveOptions_PassedFlagsOverrideConfig(t *testing.T) {
	setFlagChanged(t, "theme", "github")
	setFlagChanged(t, "min-context", "1")
	setFlagChanged(t, "max-context", "9")

	cfgTheme := "dracula"
	cfg := &config.Config{Theme: &cfgTheme}

	opts := resolveOptions(rootCmd, cfg)
	assert.Equal(t, "github", opts.Theme)
	assert.Equal(t, 1, opts.MinContext)
	assert.Equal(t, 9, opts.MaxContext)
}

func TestResolveOptions_ColorSupportConfigAppliesWhenFlagUnset(t *testing.T) {
	cfgColor := "ansi256"
	cfg := &config.Config{ColorSupport: &cfgColor}

	opts := resolveOptions(rootCmd, cfg)
	assert.Equal(t, options.Ansi256, opts.ColorSupport)
}

func TestResolveOptions_WrapNever(t *testing.T) {
	setFlagChanged(t, "wrap", "never")
	opts := resolveOptions(rootCmd, &config.Config{})
	assert.Equal(t, options.WrapNever, opts.TextWrap)
}

func TestConfigScope(t *testing.T) {
	old := localConfig
	defer func() { localConfig = old }()

	localConfig = false
	assert.Equal(t, config.ScopeGlobal, configScope())

	localConfig = true
	assert.Equal(t, config.ScopeLocal, configScope())
}
