// Package wikidata reads materialized SPARQL query results in the W3C JSON
// results format and exposes them as flat records.
package wikidata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Standard file names for the two query result sets.
const (
	PlanetsFile = "wikidata_planets.json"
	MoonsFile   = "wikidata_moons.json"
)

// unknownMarker is the blank-node placeholder segment Wikidata embeds in a
// URI when a statement exists but its value is marked "unknown".
const unknownMarker = ".well-known/genid/"

// ErrMissingField is returned when a record lacks a field the data model
// requires. Per the conversion contract this is fatal.
var ErrMissingField = errors.New("required field missing")

// Value is one bound value of a query variable.
type Value struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// IsUnknown reports whether the value carries Wikidata's "unknown value"
// sentinel rather than a real value.
func (v Value) IsUnknown() bool {
	return strings.Contains(v.Value, unknownMarker)
}

// Record maps query variable names to their bound values. Unbound optional
// variables are simply absent from the map.
type Record map[string]Value

// Get returns the value bound to the field, with a presence flag.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r[field]
	return v, ok
}

// Has reports whether the field is bound in this record.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Require returns the value bound to the field or a wrapped ErrMissingField.
func (r Record) Require(field string) (Value, error) {
	v, ok := r[field]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return v, nil
}

// resultSet mirrors the SPARQL 1.1 JSON results envelope.
type resultSet struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Record `json:"bindings"`
	} `json:"results"`
}

// Decode parses a query result document and returns its bindings in source
// order.
func Decode(r io.Reader) ([]Record, error) {
	var rs resultSet
	if err := json.NewDecoder(r).Decode(&rs); err != nil {
		return nil, fmt.Errorf("decoding query result: %w", err)
	}
	return rs.Results.Bindings, nil
}

// LoadRecords reads one query result file from disk.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening query result %s: %w", path, err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}
