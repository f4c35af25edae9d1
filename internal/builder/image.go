package builder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/knudmoeller/solar-system-rdf/internal/commons"
	"github.com/knudmoeller/solar-system-rdf/internal/rdf"
	"github.com/knudmoeller/solar-system-rdf/internal/vocab"
	"github.com/knudmoeller/solar-system-rdf/internal/wikidata"
)

// AddImage attaches the image referenced by the given record field to the
// subject, together with its license and attribution metadata from the image
// catalog. An absent field is a no-op; a second attachment attempt for the
// same (subject, field) pair is rejected by fingerprint. Resolver failures
// abort the run.
func (b *Builder) AddImage(ctx context.Context, rec wikidata.Record, field string, subject rdf.Term) error {
	v, ok := rec.Get(field)
	if !ok {
		return nil
	}

	fp := fingerprint(subject, fpImage, field)
	if b.seen(fp) {
		return nil
	}

	imageName := commons.ImageName(v.Value)
	b.log.Debug("Attaching image", zap.String("image", imageName), zap.String("subject", subject.Value))

	image := b.graph.NewBNode()
	b.graph.Add(image, rdf.IRI(vocab.RDFType), rdf.IRI(vocab.SchemaVisualArtwork))
	b.graph.Add(image, rdf.IRI(vocab.SchemaURL), rdf.IRI(commons.FileURL(imageName)))
	b.graph.Add(image, rdf.IRI(vocab.SchemaThumbnail), rdf.IRI(commons.ThumbURL(imageName, b.thumbWidth)))

	meta, err := b.resolver.Resolve(ctx, imageName)
	if err != nil {
		return fmt.Errorf("resolving metadata for image %q: %w", imageName, err)
	}
	b.imagesResolved++

	if meta.LicenseShortName != "" || meta.LicenseURL != "" {
		licenseName := meta.LicenseShortName
		if licenseName == "" {
			licenseName = meta.LicenseURL
		}
		license := b.mintEntity(vocab.KindLicense, licenseName)
		b.graph.Add(image, rdf.IRI(vocab.SchemaLicense), license)
		if meta.LicenseShortName != "" {
			b.graph.Add(license, rdf.IRI(vocab.SchemaName), rdf.Literal(meta.LicenseShortName))
		}
		if meta.LicenseURL != "" {
			b.graph.Add(license, rdf.IRI(vocab.SchemaURL), rdf.IRI(meta.LicenseURL))
		}
	}

	// The catalog's Artist value is an HTML snippet, not a clean name, so it
	// stays a plain literal rather than becoming a Person entity.
	if meta.Artist != "" {
		b.graph.Add(image, rdf.IRI(vocab.SchemaCreator), rdf.Literal(meta.Artist))
	}
	if meta.Credit != "" {
		b.graph.Add(image, rdf.IRI(vocab.SchemaCreditText), rdf.Literal(meta.Credit))
	}

	b.graph.Add(subject, rdf.IRI(vocab.SchemaImage), image)
	b.mark(fp)
	return nil
}
