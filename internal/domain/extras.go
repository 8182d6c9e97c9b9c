package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ExtrasCatalog flat fee per extra code
type ExtrasCatalog map[string]decimal.Decimal

// DefaultExtrasCatalog fees used when configuration does not override them
func DefaultExtrasCatalog() ExtrasCatalog {
	return ExtrasCatalog{
		ExtraInstructor: decimal.NewFromInt(500),
		ExtraEquipment:  decimal.Zero,
		ExtraFood:       decimal.NewFromInt(1000),
	}
}

// Normalize lowercases, de-duplicates and sorts extras, rejecting unknown codes
func (c ExtrasCatalog) Normalize(extras []string) ([]string, error) {
	if len(extras) > MaxExtrasPerOrder {
		return nil, fmt.Errorf("%w: too many extras", ErrInvalidRequest)
	}

	seen := make(map[string]struct{}, len(extras))
	out := make([]string, 0, len(extras))
	for _, raw := range extras {
		code := strings.ToLower(strings.TrimSpace(raw))
		if code == "" {
			continue
		}
		if _, ok := c[code]; !ok {
			return nil, fmt.Errorf("%w: unknown extra %q", ErrInvalidRequest, raw)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	sort.Strings(out)
	return out, nil
}

// Fee returns the fee of a known extra
func (c ExtrasCatalog) Fee(code string) (decimal.Decimal, bool) {
	fee, ok := c[code]
	return fee, ok
}

// Codes returns all known extra codes, sorted
func (c ExtrasCatalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
