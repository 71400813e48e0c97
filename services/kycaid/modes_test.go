package kycaid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/types"
)

func TestModeStore(t *testing.T) {
	conf := &config.KycaidConfiguration{
		DefaultMode: types.ModeTest,
		TestAPIKey:  "test-key",
		ProdAPIKey:  "prod-key",
	}

	t.Run("starts in the configured default mode", func(t *testing.T) {
		store := NewModeStore(conf)
		assert.Equal(t, types.ModeTest, store.Mode())
		assert.Equal(t, "test-key", store.APIKey())
	})

	t.Run("unrecognized default falls back to test", func(t *testing.T) {
		store := NewModeStore(&config.KycaidConfiguration{DefaultMode: "sandbox"})
		assert.Equal(t, types.ModeTest, store.Mode())
	})

	t.Run("switching modes switches the credential", func(t *testing.T) {
		store := NewModeStore(conf)

		assert.NoError(t, store.SetMode(types.ModeProd))
		assert.Equal(t, types.ModeProd, store.Mode())
		assert.Equal(t, "prod-key", store.APIKey())

		assert.NoError(t, store.SetMode(types.ModeTest))
		assert.Equal(t, "test-key", store.APIKey())
	})

	t.Run("invalid mode is rejected and the active mode kept", func(t *testing.T) {
		store := NewModeStore(conf)

		err := store.SetMode("staging")
		assert.ErrorAs(t, err, &ErrInvalidMode{})
		assert.Equal(t, types.ModeTest, store.Mode())
	})

	t.Run("APIKeySet reflects the active mode only", func(t *testing.T) {
		store := NewModeStore(&config.KycaidConfiguration{
			DefaultMode: types.ModeTest,
			TestAPIKey:  "test-key",
		})

		assert.True(t, store.APIKeySet())

		assert.NoError(t, store.SetMode(types.ModeProd))
		assert.False(t, store.APIKeySet())
	})
}
