// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package ids implements the pipeline's typed identifiers.
//
// Every identifier round-trips to a single canonical string: a one-letter
// prefix followed by the identifier's own payload. The prefix lets a bare
// string disambiguate which concrete type it names without any side
// channel, which is how Coagulate and Crystalise persist cross-references
// as plain strings.
package ids

import (
	"fmt"
	"strconv"
	"strings"
)

// maxGtin is the largest 14-digit GTIN.
const maxGtin = 99_999_999_999_999

// ErrorKind classifies why an identifier failed to parse.
type ErrorKind int

const (
	// ErrLength means the input had the wrong number of characters or
	// (for a Gtin) was numerically out of range.
	ErrLength ErrorKind = iota
	// ErrNumber means the numeric portion of the input did not parse.
	ErrNumber
	// ErrPrefix means a sum-type string lacked a recognised prefix letter.
	ErrPrefix
)

// ParseError reports why an identifier string could not be parsed.
type ParseError struct {
	Kind  ErrorKind
	Input string
	Err   error // set only for ErrNumber
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrLength:
		return fmt.Sprintf("identifier %q has wrong length", e.Input)
	case ErrNumber:
		return fmt.Sprintf("failed to parse number from %q: %v", e.Input, e.Err)
	case ErrPrefix:
		return fmt.Sprintf("identifier %q has unexpected prefix", e.Input)
	default:
		return fmt.Sprintf("identifier %q is invalid", e.Input)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

func errLength(input string) error { return &ParseError{Kind: ErrLength, Input: input} }
func errPrefix(input string) error { return &ParseError{Kind: ErrPrefix, Input: input} }
func errNumber(input string, cause error) error {
	return &ParseError{Kind: ErrNumber, Input: input, Err: cause}
}

// WikiId is a Wikidata entity numeric ID, canonically written "Q<digits>".
type WikiId uint64

// NewWikiId constructs a WikiId from its numeric value.
func NewWikiId(n uint64) WikiId { return WikiId(n) }

// ParseWikiId parses a canonical "Q<digits>" string.
func ParseWikiId(s string) (WikiId, error) {
	if len(s) < 2 || s[0] != 'Q' {
		return 0, errPrefix(s)
	}
	n, err := strconv.ParseUint(s[1:], 10, 64)
	if err != nil {
		return 0, errNumber(s, err)
	}
	return WikiId(n), nil
}

func (id WikiId) String() string { return fmt.Sprintf("Q%d", uint64(id)) }

// MarshalText implements encoding.TextMarshaler.
func (id WikiId) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *WikiId) UnmarshalText(text []byte) error {
	parsed, err := ParseWikiId(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Gtin is a Global Trade Item Number, canonically a zero-padded 14 digit
// string (no prefix letter: it only ever appears wrapped in a ProductId,
// which supplies the "G").
type Gtin uint64

// NewGtin constructs a Gtin from its numeric value without range checking.
func NewGtin(n uint64) Gtin { return Gtin(n) }

// ParseGtin parses an 8, 12, 13 or 14 digit GTIN, stripping spaces, dashes
// and dots first (common in spreadsheet exports).
func ParseGtin(s string) (Gtin, error) {
	cleaned := stripSeparators(s)
	switch len(cleaned) {
	case 8, 12, 13, 14:
	default:
		return 0, errLength(cleaned)
	}
	n, err := strconv.ParseUint(cleaned, 10, 64)
	if err != nil {
		return 0, errNumber(cleaned, err)
	}
	return Gtin(n), nil
}

// GtinFromNumber validates a raw number against the maximum 14 digit GTIN.
func GtinFromNumber(n uint64) (Gtin, error) {
	if n > maxGtin {
		return 0, errLength(strconv.FormatUint(n, 10))
	}
	return Gtin(n), nil
}

func (id Gtin) String() string { return fmt.Sprintf("%014d", uint64(id)) }

// Ean is a European Article Number. It shares Gtin's wire format and
// validation: EANs are a subset of GTIN-13.
type Ean = Gtin

// VatId is a VAT registration number, canonically written "V<chars>".
type VatId string

// NewVatId constructs a VatId from an already-normalised string.
func NewVatId(s string) VatId { return VatId(s) }

// ParseVatId parses the payload of a VAT id (without its "V" prefix),
// stripping spaces, dashes and dots, and requiring at least 4 characters.
func ParseVatId(s string) (VatId, error) {
	cleaned := stripSeparators(s)
	if len(cleaned) < 4 {
		return "", errLength(cleaned)
	}
	return VatId(cleaned), nil
}

func (id VatId) String() string { return "V" + string(id) }

// stripSeparators removes spaces, dashes and dots commonly found in
// spreadsheet-exported identifiers.
func stripSeparators(s string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", ".", "")
	return replacer.Replace(s)
}

// OrganisationId identifies an organisation, either by its Wikidata entity
// or by a VAT registration number. Exactly one of Wiki/Vat is set.
type OrganisationId struct {
	Wiki  WikiId
	Vat   VatId
	IsVat bool
}

// OrganisationIdFromWiki wraps a WikiId as an OrganisationId.
func OrganisationIdFromWiki(id WikiId) OrganisationId {
	return OrganisationId{Wiki: id}
}

// OrganisationIdFromVat wraps a VatId as an OrganisationId.
func OrganisationIdFromVat(id VatId) OrganisationId {
	return OrganisationId{Vat: id, IsVat: true}
}

// ParseOrganisationId parses a canonical "Q..." or "V..." string.
func ParseOrganisationId(s string) (OrganisationId, error) {
	if s == "" {
		return OrganisationId{}, errLength(s)
	}
	switch s[0] {
	case 'Q':
		wiki, err := ParseWikiId(s)
		if err != nil {
			return OrganisationId{}, err
		}
		return OrganisationIdFromWiki(wiki), nil
	case 'V':
		vat, err := ParseVatId(s[1:])
		if err != nil {
			return OrganisationId{}, err
		}
		return OrganisationIdFromVat(vat), nil
	default:
		return OrganisationId{}, errPrefix(s)
	}
}

func (id OrganisationId) String() string {
	if id.IsVat {
		return id.Vat.String()
	}
	return id.Wiki.String()
}

// MarshalText implements encoding.TextMarshaler.
func (id OrganisationId) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *OrganisationId) UnmarshalText(text []byte) error {
	parsed, err := ParseOrganisationId(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ProductId identifies a product, either by its Wikidata entity or by its
// GTIN. Exactly one of Wiki/Gtin is set.
type ProductId struct {
	Wiki   WikiId
	Gtin   Gtin
	IsGtin bool
}

// ProductIdFromWiki wraps a WikiId as a ProductId.
func ProductIdFromWiki(id WikiId) ProductId {
	return ProductId{Wiki: id}
}

// ProductIdFromGtin wraps a Gtin as a ProductId.
func ProductIdFromGtin(id Gtin) ProductId {
	return ProductId{Gtin: id, IsGtin: true}
}

// ParseProductId parses a canonical "Q..." or "G..." string.
func ParseProductId(s string) (ProductId, error) {
	if s == "" {
		return ProductId{}, errLength(s)
	}
	switch s[0] {
	case 'Q':
		wiki, err := ParseWikiId(s)
		if err != nil {
			return ProductId{}, err
		}
		return ProductIdFromWiki(wiki), nil
	case 'G':
		gtin, err := ParseGtin(s[1:])
		if err != nil {
			return ProductId{}, err
		}
		return ProductIdFromGtin(gtin), nil
	default:
		return ProductId{}, errPrefix(s)
	}
}

func (id ProductId) String() string {
	if id.IsGtin {
		return "G" + id.Gtin.String()
	}
	return id.Wiki.String()
}

// MarshalText implements encoding.TextMarshaler.
func (id ProductId) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ProductId) UnmarshalText(text []byte) error {
	parsed, err := ParseProductId(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
