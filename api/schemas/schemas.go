// Package schemas holds the shared contracts between the conversion core and
// its external collaborators.
package schemas

import (
	"context"

	"github.com/knudmoeller/solar-system-rdf/internal/rdf"
)

// ImageMetadata is the license and attribution block returned by the image
// catalog for one image. Every field is independently optional; an absent
// field is the empty string.
type ImageMetadata struct {
	LicenseShortName string
	LicenseURL       string
	Artist           string
	Credit           string
}

// ImageMetadataResolver fetches license/attribution metadata for an image by
// its catalog name. A transport failure or a structurally malformed response
// is an error; merely absent metadata fields are not.
type ImageMetadataResolver interface {
	Resolve(ctx context.Context, imageName string) (*ImageMetadata, error)
}

// ConversionSummary reports what one conversion run produced.
type ConversionSummary struct {
	RunID          string `json:"run_id"`
	Planets        int    `json:"planets"`
	Moons          int    `json:"moons"`
	ImagesResolved int    `json:"images_resolved"`
	Triples        int    `json:"triples"`
}

// GraphStats are aggregate counts read back from the persistent graph store.
type GraphStats struct {
	Runs     int64 `json:"runs"`
	Subjects int64 `json:"subjects"`
	Triples  int64 `json:"triples"`
}

// GraphStore persists finished graphs and reports aggregate counts over all
// persisted runs.
type GraphStore interface {
	SaveGraph(ctx context.Context, runID string, g *rdf.Graph) error
	Stats(ctx context.Context) (GraphStats, error)
}
