package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRegister(t *testing.T) {
	t.Run("normalizes a missing pass threshold", func(t *testing.T) {
		c := NewCatalog()
		c.Register(Config{ID: "x"})

		cfg, ok := c.Get("x")
		require.True(t, ok)
		assert.Equal(t, DefaultPassThreshold, cfg.PassThreshold)
	})

	t.Run("keeps an explicit threshold", func(t *testing.T) {
		c := NewCatalog()
		c.Register(Config{ID: "strict", PassThreshold: 9})

		cfg, _ := c.Get("strict")
		assert.Equal(t, 9, cfg.PassThreshold)
	})

	t.Run("re-registering replaces the config", func(t *testing.T) {
		c := NewCatalog()
		c.Register(Config{ID: "x", Name: "First"})
		c.Register(Config{ID: "x", Name: "Second"})

		cfg, _ := c.Get("x")
		assert.Equal(t, "Second", cfg.Name)
	})
}

func TestCatalogExists(t *testing.T) {
	c := NewCatalog()
	SeedCatalog(c)

	assert.True(t, c.Exists("congo"))
	assert.True(t, c.Exists("senegal"))
	assert.False(t, c.Exists("atlantis"))
	assert.ElementsMatch(t, []string{"congo", "senegal"}, c.IDs())
}

func TestSeededTenantsShareQuestionKeys(t *testing.T) {
	c := NewCatalog()
	SeedCatalog(c)

	for _, id := range c.IDs() {
		cfg, _ := c.Get(id)
		require.Len(t, cfg.QuestionLabels, len(QuestionKeys), "tenant %s", id)
		for _, key := range QuestionKeys {
			assert.Contains(t, cfg.QuestionLabels, key, "tenant %s missing label for %s", id, key)
		}
		assert.NotEmpty(t, cfg.VideoURLs[0], "tenant %s", id)
		assert.NotEmpty(t, cfg.VideoURLs[1], "tenant %s", id)
	}
}
