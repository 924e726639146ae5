// Package afvalwijzer retrieves waste collection schedules from mijnafvalwijzer.nl.
package afvalwijzer

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidHouseNumber is returned when a house number does not start with digits
var ErrInvalidHouseNumber = errors.New("invalid house number")

// houseNumberPattern splits "12A" into number "12" and suffix "A"
var houseNumberPattern = regexp.MustCompile(`^(\d+)(\D*)$`)

// Address identifies the schedule page of one household
type Address struct {
	PostalCode  string
	HouseNumber string
	Suffix      string
}

// ParseAddress builds an address from a postal code and a house number with optional suffix
func ParseAddress(postalCode, houseNumber string) (Address, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return Address{}, errors.New("postal code is required")
	}

	m := houseNumberPattern.FindStringSubmatch(strings.TrimSpace(houseNumber))
	if m == nil {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidHouseNumber, houseNumber)
	}

	return Address{
		PostalCode:  postalCode,
		HouseNumber: m[1],
		Suffix:      m[2],
	}, nil
}

// URL returns the schedule page URL below base, e.g. https://www.mijnafvalwijzer.nl/nl/1234AB/1/A
func (a Address) URL(base string) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		strings.TrimRight(base, "/"),
		url.PathEscape(a.PostalCode),
		url.PathEscape(a.HouseNumber),
		url.PathEscape(a.Suffix))
}

// String returns the address as "<postal code> <number><suffix>"
func (a Address) String() string {
	return a.PostalCode + " " + a.HouseNumber + a.Suffix
}
