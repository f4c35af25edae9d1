package builder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/knudmoeller/solar-system-rdf/api/schemas"
	"github.com/knudmoeller/solar-system-rdf/internal/rdf"
	"github.com/knudmoeller/solar-system-rdf/internal/vocab"
	"github.com/knudmoeller/solar-system-rdf/internal/wikidata"
)

// Fixed domain names: the single star everything orbits, and the one name
// that is typed as a dwarf planet.
const (
	starName        = "Sun"
	dwarfPlanetName = "Pluto"
)

// unitKilometres is the UN/CEFACT code for kilometres; every measurement in
// the source data is expressed in this unit.
const unitKilometres = "KMT"

// Convert walks the planet records and then the moon records in source
// order, minting entities and attaching their facts. It is a single linear
// pass; all cross-record resolution happens by deterministic identifier
// re-derivation, never by graph search.
func (b *Builder) Convert(ctx context.Context, planets, moons []wikidata.Record) (*schemas.ConversionSummary, error) {
	sun := b.addStar()

	for i, rec := range planets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.addPlanet(ctx, rec, sun); err != nil {
			return nil, fmt.Errorf("planet record %d: %w", i, err)
		}
	}

	for i, rec := range moons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := b.addMoon(ctx, rec); err != nil {
			return nil, fmt.Errorf("moon record %d: %w", i, err)
		}
	}

	return &schemas.ConversionSummary{
		Planets:        len(planets),
		Moons:          len(moons),
		ImagesResolved: b.imagesResolved,
		Triples:        b.graph.Len(),
	}, nil
}

// addStar mints the singleton Star entity.
func (b *Builder) addStar() rdf.Term {
	sun := b.mintEntity(vocab.KindStar, starName)
	b.graph.Add(sun, rdf.IRI(vocab.RDFType), rdf.IRI(b.ns.Voc("Star")))
	b.graph.Add(sun, rdf.IRI(vocab.RDFSLabel), rdf.LangLiteral(starName, "en"))
	b.graph.Add(sun, rdf.IRI(vocab.SchemaSameAs), rdf.IRI(vocab.WikidataSun))
	return sun
}

func (b *Builder) addPlanet(ctx context.Context, rec wikidata.Record, sun rdf.Term) error {
	label, err := rec.Require("planetLabel")
	if err != nil {
		return err
	}
	identity, err := rec.Require("planet")
	if err != nil {
		return err
	}

	planet := b.mintEntity(vocab.KindPlanet, label.Value)
	planetType := b.ns.Voc("Planet")
	if label.Value == dwarfPlanetName {
		planetType = b.ns.Voc("DwarfPlanet")
	}
	b.graph.Add(planet, rdf.IRI(vocab.RDFType), rdf.IRI(planetType))
	b.graph.Add(planet, rdf.IRI(vocab.RDFSLabel), rdf.LangLiteral(label.Value, "en"))
	b.graph.Add(planet, rdf.IRI(b.ns.Voc("orbits")), sun)
	b.graph.Add(planet, rdf.IRI(vocab.SchemaSameAs), rdf.IRI(identity.Value))

	if err := b.AddImage(ctx, rec, "planet_image", planet); err != nil {
		return err
	}
	if err := b.AddDiscoverer(rec, planet); err != nil {
		return err
	}
	b.AddDiscoveryDate(rec, planet)

	apoapsis, err := rec.Require("apoapsis")
	if err != nil {
		return err
	}
	b.AddQuantitativeValue(planet, rdf.IRI(b.ns.Voc("apoapsis")), unitKilometres, apoapsis.Value)

	diameter, err := rec.Require("diameter")
	if err != nil {
		return err
	}
	b.AddQuantitativeValue(planet, rdf.IRI(b.ns.Voc("diameter")), unitKilometres, diameter.Value)

	return nil
}

func (b *Builder) addMoon(ctx context.Context, rec wikidata.Record) error {
	label, err := rec.Require("satelliteLabel")
	if err != nil {
		return err
	}
	identity, err := rec.Require("satellite")
	if err != nil {
		return err
	}
	planetLabel, err := rec.Require("planetLabel")
	if err != nil {
		return err
	}

	moon := b.mintEntity(vocab.KindMoon, label.Value)
	b.graph.Add(moon, rdf.IRI(vocab.RDFType), rdf.IRI(b.ns.Voc("Moon")))
	b.graph.Add(moon, rdf.IRI(vocab.RDFSLabel), rdf.LangLiteral(label.Value, "en"))

	// The parent planet is resolved by re-deriving its identifier from the
	// moon record's planet name. A moon may legitimately precede its planet
	// in out-of-order input; the link stays valid because identifiers are
	// deterministic, but we flag it so dangling references are visible.
	planetID := vocab.MintID(vocab.KindPlanet, planetLabel.Value)
	if !b.isMinted(planetID) {
		b.log.Warn("Moon references a planet not (yet) minted in this run",
			zap.String("moon", label.Value),
			zap.String("planet", planetLabel.Value),
			zap.String("planet_id", planetID))
	}
	b.graph.Add(moon, rdf.IRI(b.ns.Voc("orbits")), rdf.IRI(b.ns.EntityByID(planetID)))
	b.graph.Add(moon, rdf.IRI(vocab.SchemaSameAs), rdf.IRI(identity.Value))

	if err := b.AddImage(ctx, rec, "satellite_image", moon); err != nil {
		return err
	}
	if err := b.AddDiscoverer(rec, moon); err != nil {
		return err
	}
	b.AddDiscoveryDate(rec, moon)

	if diameter, ok := rec.Get("diameter"); ok {
		b.AddQuantitativeValue(moon, rdf.IRI(b.ns.Voc("diameter")), unitKilometres, diameter.Value)
	}
	if radius, ok := rec.Get("radius_sample"); ok {
		b.AddQuantitativeValue(moon, rdf.IRI(b.ns.Voc("radius")), unitKilometres, radius.Value)
	}
	return nil
}
