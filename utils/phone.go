package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// NormalizePhone formats a customer phone number to E.164 when it parses.
// Region falls back to MM (the deployment default) for national-format input.
func NormalizePhone(raw string, region string) (string, error) {
	if region == "" {
		region = "MM"
	}
	num, err := libphonenumber.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return "", err
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}
