package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphAdd(t *testing.T) {
	t.Run("behaves as a set", func(t *testing.T) {
		g := NewGraph()
		s := IRI("http://example.org/s")
		p := IRI("http://example.org/p")
		o := Literal("value")

		g.Add(s, p, o)
		g.Add(s, p, o)

		assert.Equal(t, 1, g.Len())
		assert.True(t, g.Has(s, p, o))
	})

	t.Run("distinguishes literals by language and datatype", func(t *testing.T) {
		g := NewGraph()
		s := IRI("http://example.org/s")
		p := IRI("http://example.org/p")

		g.Add(s, p, Literal("Earth"))
		g.Add(s, p, LangLiteral("Earth", "en"))
		g.Add(s, p, TypedLiteral("Earth", "http://www.w3.org/2001/XMLSchema#string"))

		assert.Equal(t, 3, g.Len())
	})

	t.Run("distinguishes literals from IRIs with the same text", func(t *testing.T) {
		g := NewGraph()
		s := IRI("http://example.org/s")
		p := IRI("http://example.org/p")

		g.Add(s, p, Literal("http://example.org/o"))
		g.Add(s, p, IRI("http://example.org/o"))

		assert.Equal(t, 2, g.Len())
	})
}

func TestGraphNewBNode(t *testing.T) {
	g := NewGraph()
	first := g.NewBNode()
	second := g.NewBNode()

	assert.Equal(t, TermBlank, first.Kind)
	assert.Equal(t, "b0", first.Value)
	assert.Equal(t, "b1", second.Value)
}

func TestGraphQueries(t *testing.T) {
	g := NewGraph()
	s := IRI("http://example.org/s")
	p := IRI("http://example.org/p")
	o1 := IRI("http://example.org/o1")
	o2 := IRI("http://example.org/o2")
	g.Add(s, p, o1)
	g.Add(s, p, o2)
	g.Add(o1, p, o2)

	t.Run("Objects returns matches in insertion order", func(t *testing.T) {
		objects := g.Objects(s, p)
		assert.Equal(t, []Term{o1, o2}, objects)
	})

	t.Run("Subjects deduplicates", func(t *testing.T) {
		subjects := g.Subjects(p, o2)
		assert.Equal(t, []Term{s, o1}, subjects)
	})

	t.Run("Triples returns a copy", func(t *testing.T) {
		triples := g.Triples()
		assert.Len(t, triples, 3)
		triples[0] = Triple{}
		assert.NotEqual(t, Triple{}, g.Triples()[0])
	})
}
