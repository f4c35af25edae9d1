// Package builder grows the solar system knowledge graph from planet and
// moon query records. One Builder owns one graph, one fingerprint set, and
// one registry of minted entities for the duration of a run.
package builder

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"github.com/knudmoeller/solar-system-rdf/api/schemas"
	"github.com/knudmoeller/solar-system-rdf/internal/rdf"
	"github.com/knudmoeller/solar-system-rdf/internal/vocab"
	"github.com/knudmoeller/solar-system-rdf/internal/wikidata"
)

// DefaultThumbnailWidth is the pixel width requested for image thumbnails.
const DefaultThumbnailWidth = 200

// Attachment kinds used in deduplication fingerprints.
const (
	fpQuantity = "quantity"
	fpImage    = "image"
)

// Options tune a Builder beyond its required collaborators.
type Options struct {
	// ThumbnailWidth is the requested thumbnail pixel width. Zero means
	// DefaultThumbnailWidth.
	ThumbnailWidth int
}

// Builder accumulates the graph. It is single-threaded by design: records
// are processed one at a time and no state is shared outside the instance.
type Builder struct {
	log        *zap.Logger
	ns         vocab.Namespaces
	graph      *rdf.Graph
	resolver   schemas.ImageMetadataResolver
	thumbWidth int

	fingerprints map[string]struct{}
	minted       map[string]rdf.Term

	imagesResolved int
}

// New creates a Builder for one conversion run.
func New(ns vocab.Namespaces, resolver schemas.ImageMetadataResolver, logger *zap.Logger, opts Options) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	width := opts.ThumbnailWidth
	if width <= 0 {
		width = DefaultThumbnailWidth
	}

	g := rdf.NewGraph()
	g.Bind("space", ns.Space)
	g.Bind("spacevoc", ns.SpaceVoc)
	g.Bind("schema", vocab.SchemaOrg)
	g.Bind("wikidata", vocab.Wikidata)

	return &Builder{
		log:          logger.Named("builder"),
		ns:           ns,
		graph:        g,
		resolver:     resolver,
		thumbWidth:   width,
		fingerprints: make(map[string]struct{}),
		minted:       make(map[string]rdf.Term),
	}
}

// Graph exposes the accumulated graph for serialization and inspection.
func (b *Builder) Graph() *rdf.Graph {
	return b.graph
}

// mintEntity returns the IRI term for a (kind, name) pair and records it in
// the registry. Re-minting the same pair returns the identical term.
func (b *Builder) mintEntity(kind vocab.Kind, name string) rdf.Term {
	id := vocab.MintID(kind, name)
	if t, ok := b.minted[id]; ok {
		return t
	}
	t := rdf.IRI(b.ns.EntityByID(id))
	b.minted[id] = t
	return t
}

// isMinted reports whether a local identifier was produced by this run.
func (b *Builder) isMinted(id string) bool {
	_, ok := b.minted[id]
	return ok
}

// fingerprint digests the fields that define the uniqueness of one auxiliary
// fact: the subject, the attachment kind, and a per-kind discriminator.
func fingerprint(subject rdf.Term, kind, discriminator string) string {
	sum := md5.Sum([]byte(subject.Value + "|" + kind + "|" + discriminator))
	return hex.EncodeToString(sum[:])
}

func (b *Builder) seen(fp string) bool {
	_, ok := b.fingerprints[fp]
	return ok
}

func (b *Builder) mark(fp string) {
	b.fingerprints[fp] = struct{}{}
}

// AddQuantitativeValue attaches one measurement to a subject via the named
// property, unless an identical measurement was already attached. The raw
// value is carried as an opaque literal with its unit code; no conversion
// happens here.
func (b *Builder) AddQuantitativeValue(subject rdf.Term, property rdf.Term, unitCode, value string) {
	fp := fingerprint(subject, fpQuantity, value+"|"+unitCode)
	if b.seen(fp) {
		return
	}

	node := b.graph.NewBNode()
	b.graph.Add(subject, property, node)
	b.graph.Add(node, rdf.IRI(vocab.RDFType), rdf.IRI(vocab.SchemaQuantitativeValue))
	b.graph.Add(node, rdf.IRI(vocab.SchemaValue), rdf.Literal(value))
	b.graph.Add(node, rdf.IRI(vocab.SchemaUnitCode), rdf.Literal(unitCode))
	b.mark(fp)
}

// AddDiscoverer links the subject to its discoverer as a Person entity,
// minted at most once per distinct name. A discoverer bound to Wikidata's
// "unknown value" sentinel produces nothing.
func (b *Builder) AddDiscoverer(rec wikidata.Record, subject rdf.Term) error {
	v, ok := rec.Get("discoverer")
	if !ok || v.IsUnknown() {
		return nil
	}

	label, err := rec.Require("discovererLabel")
	if err != nil {
		return fmt.Errorf("discoverer %s has no label: %w", v.Value, err)
	}

	person := b.mintEntity(vocab.KindPerson, label.Value)
	b.graph.Add(subject, rdf.IRI(b.ns.Voc("discoverer")), person)
	b.graph.Add(person, rdf.IRI(vocab.RDFType), rdf.IRI(vocab.SchemaPerson))
	b.graph.Add(person, rdf.IRI(vocab.SchemaName), rdf.Literal(label.Value))
	b.graph.Add(person, rdf.IRI(vocab.SchemaSameAs), rdf.IRI(v.Value))
	return nil
}

// AddDiscoveryDate attaches the discovery date truncated to calendar-day
// precision as a typed xsd:date literal. Unknown-sentinel values are
// suppressed entirely.
func (b *Builder) AddDiscoveryDate(rec wikidata.Record, subject rdf.Term) {
	v, ok := rec.Get("time_of_discovery")
	if !ok || v.IsUnknown() {
		return
	}

	date := v.Value
	if len(date) > 10 {
		date = date[:10]
	}
	b.graph.Add(subject, rdf.IRI(b.ns.Voc("time_of_discovery")), rdf.TypedLiteral(date, vocab.XSDDate))
}
