// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// RegionsKind tags which variant a Regions value holds.
type RegionsKind int

const (
	// RegionsUnknown means availability was never asserted by any source.
	// It is the zero value, so an unpopulated Regions field reads as
	// Unknown rather than silently claiming worldwide availability.
	RegionsUnknown RegionsKind = iota
	// RegionsWorld means available everywhere; absorbs any other variant
	// on merge.
	RegionsWorld
	// RegionsList means availability is restricted to a concrete, known
	// set of ISO-3166 alpha-2/3 country codes.
	RegionsList
)

// Regions is the tagged union World | Unknown | List(set of country
// codes) describing where a product is sold. Only List carries a payload.
type Regions struct {
	Kind  RegionsKind
	Codes map[string]struct{}
}

// World constructs the World variant.
func World() Regions { return Regions{Kind: RegionsWorld} }

// UnknownRegions constructs the Unknown variant.
func UnknownRegions() Regions { return Regions{Kind: RegionsUnknown} }

// RegionList constructs the List variant from a slice of country codes.
func RegionList(codes ...string) Regions {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return Regions{Kind: RegionsList, Codes: set}
}

// Sorted returns the List's country codes in sorted order. Returns nil for
// any other variant.
func (r Regions) Sorted() []string {
	if r.Kind != RegionsList {
		return nil
	}
	out := make([]string, 0, len(r.Codes))
	for c := range r.Codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MergeRegions implements the region merge algebra:
// World ∪ x = World; Unknown ∪ List = List; List ∪ List = set union.
func MergeRegions(a, b Regions) Regions {
	if a.Kind == RegionsWorld || b.Kind == RegionsWorld {
		return World()
	}
	if a.Kind == RegionsUnknown {
		return b
	}
	if b.Kind == RegionsUnknown {
		return a
	}
	// Both List.
	union := make(map[string]struct{}, len(a.Codes)+len(b.Codes))
	for c := range a.Codes {
		union[c] = struct{}{}
	}
	for c := range b.Codes {
		union[c] = struct{}{}
	}
	return Regions{Kind: RegionsList, Codes: union}
}

// regionsWire is the JSON-on-the-wire shape of Regions: a kind tag plus an
// optional sorted code list, keeping serialization deterministic (no map
// iteration order reaching disk).
type regionsWire struct {
	Kind  string   `json:"kind"`
	Codes []string `json:"codes,omitempty"`
}

// MarshalJSON implements json.Marshaler with a stable, sorted encoding.
func (r Regions) MarshalJSON() ([]byte, error) {
	wire := regionsWire{}
	switch r.Kind {
	case RegionsWorld:
		wire.Kind = "world"
	case RegionsUnknown:
		wire.Kind = "unknown"
	case RegionsList:
		wire.Kind = "list"
		wire.Codes = r.Sorted()
	default:
		return nil, fmt.Errorf("unknown Regions kind %d", r.Kind)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Regions) UnmarshalJSON(data []byte) error {
	var wire regionsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Kind {
	case "world":
		*r = World()
	case "unknown":
		*r = UnknownRegions()
	case "list":
		*r = RegionList(wire.Codes...)
	default:
		return fmt.Errorf("unknown Regions kind %q", wire.Kind)
	}
	return nil
}
