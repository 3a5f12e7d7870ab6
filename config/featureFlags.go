package config

import (
	"os"
	"strings"
)

// StrictLedgerImmutability refuses in-place edits of purchases and sales;
// documents must be deleted and recreated instead. Off by default.
//
// Set via env:
// - STRICT_LEDGER_IMMUTABLE=true
func StrictLedgerImmutability() bool {
	return boolFromEnv("STRICT_LEDGER_IMMUTABLE")
}

// ReportCacheDisabled turns off redis report caching so every report reads
// the database directly.
//
// Set via env:
// - REPORT_CACHE_DISABLED=true
func ReportCacheDisabled() bool {
	return boolFromEnv("REPORT_CACHE_DISABLED")
}

func boolFromEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
