package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vorsorge/pkg/domain-errors"
)

func TestParseConsentCategory(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseConsentCategory("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := ParseConsentCategory("cookie_banner")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects case variants", func(t *testing.T) {
		_, err := ParseConsentCategory("AGB")
		require.Error(t, err)
	})

	t.Run("accepts every supported category", func(t *testing.T) {
		for _, raw := range []string{"agb", "avv", "b2b_confirm", "marketing"} {
			c, err := ParseConsentCategory(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, raw, c.String())
			assert.True(t, c.IsValid())
		}
	})
}

func TestParseDocumentVersion(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseDocumentVersion("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects non-date schemes", func(t *testing.T) {
		for _, raw := range []string{"v1", "2026", "2026-13", "2026-00", "26-02", "2026-2"} {
			_, err := ParseDocumentVersion(raw)
			require.Error(t, err, raw)
		}
	})

	t.Run("accepts YYYY-MM revisions", func(t *testing.T) {
		v, err := ParseDocumentVersion("2026-02")
		require.NoError(t, err)
		assert.Equal(t, "2026-02", v.String())
		assert.False(t, v.IsNil())
	})
}
