package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testEngine string

const (
	enginePandoc   testEngine = "pandoc"
	engineGoldmark testEngine = "goldmark"
)

func newEngines() *EnumNormalizer[testEngine] {
	return NewEnumNormalizer("engine", map[string]testEngine{
		"pandoc":   enginePandoc,
		"Goldmark": engineGoldmark,
	}, enginePandoc)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newEngines()

	tests := []struct {
		name     string
		input    string
		expected testEngine
	}{
		{"exact match", "pandoc", enginePandoc},
		{"key normalized at construction", "goldmark", engineGoldmark},
		{"case insensitive", "GOLDMARK", engineGoldmark},
		{"with spaces", "  pandoc  ", enginePandoc},
		{"unknown falls back to default", "latex", enginePandoc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Lookup(t *testing.T) {
	n := newEngines()

	v, ok := n.Lookup(" Pandoc")
	require.True(t, ok)
	require.Equal(t, enginePandoc, v)

	_, ok = n.Lookup("latex")
	require.False(t, ok)
}

func TestEnumNormalizer_NormalizeWithValidation(t *testing.T) {
	n := newEngines()

	v, err := n.NormalizeWithValidation("")
	require.NoError(t, err)
	require.Equal(t, enginePandoc, v)

	_, err = n.NormalizeWithValidation("latex")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid engine")
	require.Contains(t, err.Error(), "[goldmark pandoc]")
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	n := newEngines()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	require.Equal(t, []string{"goldmark", "pandoc"}, n.ValidKeys())
}
