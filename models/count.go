package models

import (
	"strconv"
	"strings"
)

// LenientCount decodes beneficiary and stock counts that partners may submit
// as a number, a numeric string, or garbage. Missing, unparseable or negative
// values become zero; decoding never fails.
type LenientCount int

func (c *LenientCount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*c = 0
		return nil
	}
	raw = strings.TrimSpace(strings.Trim(raw, `"`))
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		*c = 0
		return nil
	}
	*c = LenientCount(int(parsed))
	return nil
}

func (c LenientCount) Int() int {
	if c < 0 {
		return 0
	}
	return int(c)
}
