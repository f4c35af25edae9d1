package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/knudmoeller/solar-system-rdf/internal/builder"
	"github.com/knudmoeller/solar-system-rdf/internal/config"
	"github.com/knudmoeller/solar-system-rdf/internal/mocks"
	"github.com/knudmoeller/solar-system-rdf/internal/vocab"
	"github.com/knudmoeller/solar-system-rdf/internal/wikidata"
)

const planetsFixture = `{
  "head": { "vars": ["planet", "planetLabel", "apoapsis", "diameter"] },
  "results": {
    "bindings": [
      {
        "planet": { "type": "uri", "value": "http://www.wikidata.org/entity/Q2" },
        "planetLabel": { "xml:lang": "en", "type": "literal", "value": "Earth" },
        "apoapsis": { "type": "literal", "value": "152097597" },
        "diameter": { "type": "literal", "value": "12742" }
      }
    ]
  }
}`

const moonsFixture = `{
  "head": { "vars": ["satellite", "satelliteLabel", "planetLabel"] },
  "results": {
    "bindings": [
      {
        "satellite": { "type": "uri", "value": "http://www.wikidata.org/entity/Q405" },
        "satelliteLabel": { "xml:lang": "en", "type": "literal", "value": "Moon" },
        "planetLabel": { "xml:lang": "en", "type": "literal", "value": "Earth" }
      }
    ]
  }
}`

// fakeFactory hands the command a pre-built set of components.
type fakeFactory struct {
	components *Components
	err        error
}

func (f *fakeFactory) Create(ctx context.Context, cfg *config.Config) (*Components, error) {
	return f.components, f.err
}

// runConvert executes a freshly wired convert command. SetArgs keeps cobra
// away from the test binary's own os.Args.
func runConvert(factory ComponentFactory) error {
	cmd := newConvertCmd(factory)
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.ExecuteContext(context.Background())
}

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, wikidata.PlanetsFile), []byte(planetsFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, wikidata.MoonsFile), []byte(moonsFixture), 0o644))
}

func newRunComponents(t *testing.T, store *mocks.MockGraphStore) *Components {
	t.Helper()
	ns, err := vocab.NewNamespaces("https://example.org/solar/")
	require.NoError(t, err)

	c := &Components{
		Builder:    builder.New(ns, new(mocks.MockResolver), nil, builder.Options{}),
		Namespaces: ns,
	}
	if store != nil {
		c.GraphStore = store
	}
	return c
}

func TestConvertCommand(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	writeFixtures(t, sourceDir)

	cfg := &config.Config{}
	cfg.Dataset.SourceDir = sourceDir
	cfg.Dataset.Output = filepath.Join(outputDir, "out.ttl")
	cfg.Dataset.BaseURL = "https://example.org/solar/"
	config.Set(cfg)

	t.Run("writes Turtle for the loaded records", func(t *testing.T) {
		require.NoError(t, runConvert(&fakeFactory{components: newRunComponents(t, nil)}))

		out, err := os.ReadFile(cfg.Dataset.Output)
		require.NoError(t, err)
		turtle := string(out)
		assert.Contains(t, turtle, "space:p_earth")
		assert.Contains(t, turtle, "space:m_moon")
		assert.Contains(t, turtle, "space:s_sun")
		assert.Contains(t, turtle, "spacevoc:orbits")
	})

	t.Run("persists the graph when a store is configured", func(t *testing.T) {
		store := new(mocks.MockGraphStore)
		store.On("SaveGraph", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()

		require.NoError(t, runConvert(&fakeFactory{components: newRunComponents(t, store)}))
		store.AssertExpectations(t)
	})

	t.Run("a persistence failure fails the command", func(t *testing.T) {
		store := new(mocks.MockGraphStore)
		store.On("SaveGraph", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("database gone")).Once()

		err := runConvert(&fakeFactory{components: newRunComponents(t, store)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database gone")
	})

	t.Run("factory failure aborts before loading records", func(t *testing.T) {
		wantErr := errors.New("bad base URL")
		err := runConvert(&fakeFactory{err: wantErr})
		require.ErrorIs(t, err, wantErr)
	})

	t.Run("missing source files fail the run", func(t *testing.T) {
		original := cfg.Dataset.SourceDir
		cfg.Dataset.SourceDir = t.TempDir()
		defer func() { cfg.Dataset.SourceDir = original }()

		require.Error(t, runConvert(&fakeFactory{components: newRunComponents(t, nil)}))
	})
}
