package rdf

import (
	"fmt"
	"sort"
)

// Prefix binds a short name to a namespace IRI for serialization.
type Prefix struct {
	Name string
	IRI  string
}

// Graph is a mutable set of triples with bound namespace prefixes. It is not
// safe for concurrent use; one builder owns one graph for the duration of a
// run.
type Graph struct {
	triples  []Triple
	index    map[string]struct{}
	prefixes []Prefix
	bnodeSeq int
}

// NewGraph returns an empty graph with the core RDF prefixes bound.
func NewGraph() *Graph {
	g := &Graph{index: make(map[string]struct{})}
	g.Bind("rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#")
	g.Bind("rdfs", "http://www.w3.org/2000/01/rdf-schema#")
	g.Bind("xsd", "http://www.w3.org/2001/XMLSchema#")
	return g
}

// Add inserts a triple. Inserting a triple that is already present is a
// no-op, so the graph behaves as a set.
func (g *Graph) Add(subject, predicate, object Term) {
	t := Triple{Subject: subject, Predicate: predicate, Object: object}
	k := t.key()
	if _, ok := g.index[k]; ok {
		return
	}
	g.index[k] = struct{}{}
	g.triples = append(g.triples, t)
}

// NewBNode allocates a fresh anonymous node. Labels are sequential within
// one graph, which keeps serialization deterministic.
func (g *Graph) NewBNode() Term {
	t := Term{Kind: TermBlank, Value: fmt.Sprintf("b%d", g.bnodeSeq)}
	g.bnodeSeq++
	return t
}

// Bind registers a namespace prefix for serialization. Rebinding an existing
// prefix replaces the namespace.
func (g *Graph) Bind(name, iri string) {
	for i, p := range g.prefixes {
		if p.Name == name {
			g.prefixes[i].IRI = iri
			return
		}
	}
	g.prefixes = append(g.prefixes, Prefix{Name: name, IRI: iri})
}

// Len returns the number of distinct triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(subject, predicate, object Term) bool {
	_, ok := g.index[Triple{Subject: subject, Predicate: predicate, Object: object}.key()]
	return ok
}

// Triples returns a copy of all triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Objects returns every object of triples matching the given subject and
// predicate, in insertion order.
func (g *Graph) Objects(subject, predicate Term) []Term {
	var out []Term
	for _, t := range g.triples {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// Subjects returns every distinct subject of triples matching the given
// predicate and object.
func (g *Graph) Subjects(predicate, object Term) []Term {
	seen := make(map[string]struct{})
	var out []Term
	for _, t := range g.triples {
		if t.Predicate == predicate && t.Object == object {
			if _, ok := seen[t.Subject.key()]; ok {
				continue
			}
			seen[t.Subject.key()] = struct{}{}
			out = append(out, t.Subject)
		}
	}
	return out
}

// sortedPrefixes returns the bound prefixes ordered by name.
func (g *Graph) sortedPrefixes() []Prefix {
	out := make([]Prefix, len(g.prefixes))
	copy(out, g.prefixes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
