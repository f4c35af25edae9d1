// Package rdf provides a minimal in-memory RDF graph: terms, triples,
// set-semantics insertion, and a deterministic Turtle serializer.
package rdf

import "fmt"

// TermKind discriminates the three kinds of RDF terms.
type TermKind int

const (
	// TermIRI is a named resource.
	TermIRI TermKind = iota
	// TermBlank is an anonymous node, addressable only within one graph.
	TermBlank
	// TermLiteral is a value with an optional language tag or datatype.
	TermLiteral
)

// Term is one RDF term. Value holds the IRI, the blank node label, or the
// literal lexical form depending on Kind.
type Term struct {
	Kind     TermKind
	Value    string
	Lang     string
	Datatype string
}

// IRI returns a named-resource term.
func IRI(value string) Term {
	return Term{Kind: TermIRI, Value: value}
}

// Literal returns a plain string literal.
func Literal(value string) Term {
	return Term{Kind: TermLiteral, Value: value}
}

// LangLiteral returns a language-tagged literal.
func LangLiteral(value, lang string) Term {
	return Term{Kind: TermLiteral, Value: value, Lang: lang}
}

// TypedLiteral returns a literal with an explicit datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: TermLiteral, Value: value, Datatype: datatype}
}

// String renders the canonical N-Triples-like form of the term. It doubles
// as the set-membership key, so two terms are equal exactly when their
// string forms match.
func (t Term) String() string {
	switch t.Kind {
	case TermIRI:
		return "<" + t.Value + ">"
	case TermBlank:
		return "_:" + t.Value
	default:
		return fmt.Sprintf("%q@%s^^%s", t.Value, t.Lang, t.Datatype)
	}
}

func (t Term) key() string {
	return t.String()
}

// Triple is one subject-predicate-object statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func (t Triple) key() string {
	return t.Subject.key() + " " + t.Predicate.key() + " " + t.Object.key()
}
