// Package vocab defines the RDF namespaces and identifier-minting rules used
// throughout the solar system graph.
package vocab

import (
	"fmt"
	"net/url"

	"github.com/gosimple/slug"
)

// Well-known external namespaces.
const (
	SchemaOrg = "https://schema.org/"
	Wikidata  = "http://www.wikidata.org/entity/"
	RDF       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS      = "http://www.w3.org/2000/01/rdf-schema#"
	XSD       = "http://www.w3.org/2001/XMLSchema#"
)

// Frequently used schema.org and core-vocabulary terms.
const (
	SchemaVisualArtwork     = SchemaOrg + "VisualArtwork"
	SchemaQuantitativeValue = SchemaOrg + "QuantitativeValue"
	SchemaPerson            = SchemaOrg + "Person"
	SchemaName              = SchemaOrg + "name"
	SchemaURL               = SchemaOrg + "url"
	SchemaThumbnail         = SchemaOrg + "thumbnail"
	SchemaLicense           = SchemaOrg + "license"
	SchemaCreator           = SchemaOrg + "creator"
	SchemaCreditText        = SchemaOrg + "creditText"
	SchemaSameAs            = SchemaOrg + "sameAs"
	SchemaImage             = SchemaOrg + "image"
	SchemaValue             = SchemaOrg + "value"
	SchemaUnitCode          = SchemaOrg + "unitCode"

	RDFType   = RDF + "type"
	RDFSLabel = RDFS + "label"
	XSDDate   = XSD + "date"
)

// WikidataSun is the Wikidata item for the Sun (Q525).
const WikidataSun = Wikidata + "Q525"

// Kind tags the category of a minted entity. The tag selects the identifier
// prefix, so identifiers for different kinds can never collide.
type Kind string

const (
	KindStar    Kind = "star"
	KindPlanet  Kind = "planet"
	KindMoon    Kind = "moon"
	KindPerson  Kind = "person"
	KindLicense Kind = "license"
)

var kindPrefixes = map[Kind]string{
	KindStar:    "s_",
	KindPlanet:  "p_",
	KindMoon:    "m_",
	KindPerson:  "person_",
	KindLicense: "lic_",
}

// MintID derives the deterministic local identifier for an entity of the
// given kind. The same (kind, name) pair always yields the same identifier.
// Unusual names still normalize to some slug; an empty slug is a documented
// degenerate case, not an error.
func MintID(kind Kind, name string) string {
	return kindPrefixes[kind] + slug.Make(name)
}

// Namespaces holds the two project namespaces derived from the configured
// base URL: one for minted entities and one for the domain vocabulary.
type Namespaces struct {
	Space    string
	SpaceVoc string
}

// NewNamespaces resolves the vocabulary namespace against the dataset base
// URL. The base must be an absolute URL; a trailing slash keeps the
// vocabulary below the base rather than beside it.
func NewNamespaces(base string) (Namespaces, error) {
	u, err := url.Parse(base)
	if err != nil {
		return Namespaces{}, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if !u.IsAbs() {
		return Namespaces{}, fmt.Errorf("base URL %q is not absolute", base)
	}
	ref := &url.URL{Path: "spacevoc/"}
	return Namespaces{
		Space:    base,
		SpaceVoc: u.ResolveReference(ref).String(),
	}, nil
}

// Entity returns the full IRI for a minted entity of the given kind.
func (n Namespaces) Entity(kind Kind, name string) string {
	return n.Space + MintID(kind, name)
}

// EntityByID returns the full IRI for an already-minted local identifier.
func (n Namespaces) EntityByID(id string) string {
	return n.Space + id
}

// Voc returns the full IRI for a domain vocabulary term such as "orbits" or
// "Planet".
func (n Namespaces) Voc(term string) string {
	return n.SpaceVoc + term
}
