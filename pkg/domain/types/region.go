package types

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// RegionCode is an ISO 3166-1 alpha-3 country code such as "RUS"
type RegionCode string

var regionPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NewRegionCode trims and upper-cases s
func NewRegionCode(s string) RegionCode {
	return RegionCode(strings.ToUpper(strings.TrimSpace(s)))
}

// Validate checks if the RegionCode is valid
func (r RegionCode) Validate() error {
	if r == "" {
		return goerr.New("region code cannot be empty")
	}
	if !regionPattern.MatchString(string(r)) {
		return goerr.New("region code must be three upper-case letters", goerr.V("region", r))
	}
	return nil
}

// String returns the string representation of RegionCode
func (r RegionCode) String() string {
	return string(r)
}
