package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	t.Run("accepts the enumerated set", func(t *testing.T) {
		for _, raw := range []string{"light", "dark"} {
			theme, err := ParseTheme(raw)
			require.NoError(t, err)
			assert.Equal(t, Theme(raw), theme)
		}
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, raw := range []string{"", "purple", "DARK", "Light", " dark"} {
			_, err := ParseTheme(raw)
			assert.Error(t, err, "value %q", raw)
		}
	})
}
