// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package feeds

import (
	"bytes"
	"encoding/json"

	"github.com/transpaer/condenser/pkg/model"
)

// Wikidata property ids this pipeline reasons over, grounded on the
// original crate's properties module.
const (
	PropInstanceOf      = "P31"
	PropSubclassOf      = "P279"
	PropFollows         = "P155"
	PropFollowedBy      = "P156"
	PropManufacturer    = "P176"
	PropOfficialWebsite = "P856"
	PropGtin            = "P3962"
)

// IsWikidataEntityLine reports whether a raw line from the streamed dump
// carries an entity object rather than the surrounding JSON array's own
// punctuation ("[", "]", "," or an empty line), matching the original
// reader's should_ignore_line check.
func IsWikidataEntityLine(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	switch string(trimmed) {
	case "", "[", "]", ",":
		return false
	default:
		return true
	}
}

// trimTrailingComma strips the single trailing "," every non-final array
// element carries in the streamed dump.
func trimTrailingComma(line []byte) []byte {
	trimmed := bytes.TrimSpace(line)
	return bytes.TrimSuffix(trimmed, []byte(","))
}

// WikidataSnak is the leaf value of a claim.
type WikidataSnak struct {
	Datavalue struct {
		Value json.RawMessage `json:"value"`
		Type  string          `json:"type"`
	} `json:"datavalue"`
}

// WikidataClaim is one entry under an entity's "claims" map.
type WikidataClaim struct {
	Mainsnak WikidataSnak `json:"mainsnak"`
}

// WikidataLabel is one entry of an entity's "labels" map.
type WikidataLabel struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// WikidataEntityRef is the shape of a "wikibase-entityid" datavalue.
type WikidataEntityRef struct {
	Id string `json:"id"`
}

// WikidataItem is the subset of a Wikidata JSON dump entity this pipeline
// reads: its id, entity type, labels (keyed by language), and property
// claims.
type WikidataItem struct {
	Id     string                     `json:"id"`
	Type   string                     `json:"type"`
	Labels map[string]WikidataLabel   `json:"labels"`
	Claims map[string][]WikidataClaim `json:"claims"`
}

// ParseWikidataLine decodes one entity line from the streamed dump,
// skipping the array punctuation the dump's own JSON formatting adds.
// Returns ok=false for a punctuation line rather than an error.
func ParseWikidataLine(line []byte) (item WikidataItem, ok bool, err error) {
	if !IsWikidataEntityLine(line) {
		return WikidataItem{}, false, nil
	}
	if err := json.Unmarshal(trimTrailingComma(line), &item); err != nil {
		return WikidataItem{}, false, err
	}
	return item, true, nil
}

// entityRefs returns the Q-ids referenced by every claim of property prop.
func (it WikidataItem) entityRefs(prop string) []string {
	var out []string
	for _, claim := range it.Claims[prop] {
		var ref WikidataEntityRef
		if err := json.Unmarshal(claim.Mainsnak.Datavalue.Value, &ref); err == nil && ref.Id != "" {
			out = append(out, ref.Id)
		}
	}
	return out
}

// stringValues returns the plain string datavalues of every claim of
// property prop (used for the "official website" and GTIN properties).
func (it WikidataItem) stringValues(prop string) []string {
	var out []string
	for _, claim := range it.Claims[prop] {
		var s string
		if err := json.Unmarshal(claim.Mainsnak.Datavalue.Value, &s); err == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasManufacturer reports whether the item asserts a manufacturer claim.
func (it WikidataItem) HasManufacturer() bool { return len(it.Claims[PropManufacturer]) > 0 }

// HasGtin reports whether the item asserts a GTIN claim.
func (it WikidataItem) HasGtin() bool { return len(it.Claims[PropGtin]) > 0 }

// IsProduct mirrors FullSources::is_product: an item with a manufacturer
// or a GTIN is treated as a product candidate.
func (it WikidataItem) IsProduct() bool { return it.HasManufacturer() || it.HasGtin() }

// ManufacturerIds returns the Q-ids of every asserted manufacturer.
func (it WikidataItem) ManufacturerIds() []string { return it.entityRefs(PropManufacturer) }

// InstanceOfIds returns the Q-ids this item is a direct instance of.
func (it WikidataItem) InstanceOfIds() []string { return it.entityRefs(PropInstanceOf) }

// SubclassOfIds returns the Q-ids this item directly subclasses.
func (it WikidataItem) SubclassOfIds() []string { return it.entityRefs(PropSubclassOf) }

// FollowsIds / FollowedByIds expose the product-succession claims.
func (it WikidataItem) FollowsIds() []string    { return it.entityRefs(PropFollows) }
func (it WikidataItem) FollowedByIds() []string { return it.entityRefs(PropFollowedBy) }

// OfficialWebsites returns every asserted official-website URL.
func (it WikidataItem) OfficialWebsites() []string { return it.stringValues(PropOfficialWebsite) }

// Gtins returns every asserted GTIN string.
func (it WikidataItem) Gtins() []string { return it.stringValues(PropGtin) }

// Label returns the English label, or "" if none was asserted.
func (it WikidataItem) Label() string {
	if l, ok := it.Labels["en"]; ok {
		return l.Value
	}
	return ""
}

// IsOrganisation mirrors FullSources::is_organisation: an asserted
// official website is the signal an item describes a company rather than
// a product, independent of any "instance of" claim.
func (it WikidataItem) IsOrganisation() bool {
	return len(it.OfficialWebsites()) > 0
}

// CategoryMap is a fixed table mapping a Wikidata class id (the subject
// of an instance-of or subclass-of claim) to its user-facing category
// name. Extract collects class ids without expanding them, so only an
// item's direct instance-of/subclass-of classes are looked up; a class
// reached through further subclass-of steps is not matched.
var CategoryMap = map[string]string{
	"Q22645":   "smartphone",
	"Q3962":    "laptop",
	"Q1183543": "printer",
	"Q27230":   "wristwatch",
	"Q11707":   "restaurant",
	"Q486263":  "clothing",
}

// Categories resolves every instance-of/subclass-of class id against
// CategoryMap and returns the distinct category names found.
func (it WikidataItem) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(classId string) {
		name, ok := CategoryMap[classId]
		if !ok {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, id := range it.InstanceOfIds() {
		add(id)
	}
	for _, id := range it.SubclassOfIds() {
		add(id)
	}
	return out
}

// DecodeWikidataItem turns one WikidataItem into a substrate record,
// classifying it as a product or an organisation with the same predicate
// Filter uses: each retained entity becomes either a product or an
// organisation substrate record based on that shared predicate. ok is
// false for an item neither predicate accepts.
func DecodeWikidataItem(it WikidataItem) (rec model.SubstrateRecord, ok bool) {
	isProduct := it.IsProduct()
	isOrganisation := it.IsOrganisation()
	if !isProduct && !isOrganisation {
		return model.SubstrateRecord{}, false
	}

	rec = model.SubstrateRecord{
		InnerId: it.Id,
		Regions: model.UnknownRegions(),
	}
	if isProduct {
		rec.Kind = model.KindProduct
	} else {
		rec.Kind = model.KindProducer
	}

	if label := it.Label(); label != "" {
		rec.Names = append(rec.Names, model.Text{Text: label, Source: model.SourceWikidata})
	}
	rec.WikiIds = append(rec.WikiIds, model.Text{Text: it.Id, Source: model.SourceWikidata})

	for _, gtin := range it.Gtins() {
		rec.Gtins = append(rec.Gtins, model.Text{Text: gtin, Source: model.SourceWikidata})
	}
	for _, url := range it.OfficialWebsites() {
		rec.Websites = append(rec.Websites, model.Text{Text: url, Source: model.SourceWikidata})
		if domain := model.NormalizeDomain(url); domain != "" {
			rec.Domains = append(rec.Domains, model.Text{Text: domain, Source: model.SourceWikidata})
		}
	}
	for _, category := range it.Categories() {
		rec.Categories = append(rec.Categories, model.Text{Text: category, Source: model.SourceWikidata})
	}
	for _, manufacturerId := range it.ManufacturerIds() {
		rec.CrossRefs = append(rec.CrossRefs, model.CrossRef{Source: model.SourceWikidata, InnerId: manufacturerId, Role: model.CrossRefManufacturer})
	}
	for _, followsId := range it.FollowsIds() {
		rec.CrossRefs = append(rec.CrossRefs, model.CrossRef{Source: model.SourceWikidata, InnerId: followsId, Role: model.CrossRefFollows})
	}
	for _, followedById := range it.FollowedByIds() {
		rec.CrossRefs = append(rec.CrossRefs, model.CrossRef{Source: model.SourceWikidata, InnerId: followedById, Role: model.CrossRefFollowedBy})
	}

	return rec, true
}
