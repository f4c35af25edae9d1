package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintID(t *testing.T) {
	t.Run("is deterministic for identical input", func(t *testing.T) {
		first := MintID(KindPlanet, "Earth")
		second := MintID(KindPlanet, "Earth")
		assert.Equal(t, first, second)
		assert.Equal(t, "p_earth", first)
	})

	t.Run("distinct names yield distinct identifiers", func(t *testing.T) {
		assert.NotEqual(t, MintID(KindPlanet, "Earth"), MintID(KindPlanet, "Mars"))
	})

	t.Run("kind prefixes keep kinds apart", func(t *testing.T) {
		assert.Equal(t, "s_sun", MintID(KindStar, "Sun"))
		assert.Equal(t, "m_titan", MintID(KindMoon, "Titan"))
		assert.Equal(t, "person_clyde-tombaugh", MintID(KindPerson, "Clyde Tombaugh"))
		assert.NotEqual(t, MintID(KindStar, "Sun"), MintID(KindPlanet, "Sun"))
	})

	t.Run("normalizes punctuation and case", func(t *testing.T) {
		assert.Equal(t, MintID(KindPerson, "Galileo Galilei"), MintID(KindPerson, "galileo galilei"))
	})

	t.Run("empty name degenerates to the bare prefix", func(t *testing.T) {
		// A known degenerate case, accepted rather than rejected.
		assert.Equal(t, "p_", MintID(KindPlanet, ""))
	})
}

func TestNewNamespaces(t *testing.T) {
	t.Run("derives the vocabulary namespace below the base", func(t *testing.T) {
		ns, err := NewNamespaces("https://example.org/solar/")
		require.NoError(t, err)
		assert.Equal(t, "https://example.org/solar/", ns.Space)
		assert.Equal(t, "https://example.org/solar/spacevoc/", ns.SpaceVoc)
	})

	t.Run("rejects relative base URLs", func(t *testing.T) {
		_, err := NewNamespaces("solar/")
		require.Error(t, err)
	})

	t.Run("entity and vocabulary IRIs", func(t *testing.T) {
		ns, err := NewNamespaces("https://example.org/solar/")
		require.NoError(t, err)
		assert.Equal(t, "https://example.org/solar/p_earth", ns.Entity(KindPlanet, "Earth"))
		assert.Equal(t, "https://example.org/solar/p_earth", ns.EntityByID("p_earth"))
		assert.Equal(t, "https://example.org/solar/spacevoc/orbits", ns.Voc("orbits"))
	})
}
