package models

import (
	"fmt"
)

// CacheStrategy represents the fetch-handling policy compiled into the
// generated service worker. It is chosen once at generation time; the
// emitted worker contains exactly one strategy body.
type CacheStrategy string

const (
	CacheFirst           CacheStrategy = "cache-first"
	NetworkFirst         CacheStrategy = "network-first"
	StaleWhileRevalidate CacheStrategy = "stale-while-revalidate"
)

// IsValid checks if the cache strategy is valid
func (s CacheStrategy) IsValid() bool {
	switch s {
	case CacheFirst, NetworkFirst, StaleWhileRevalidate:
		return true
	default:
		return false
	}
}

// String returns the string representation of CacheStrategy
func (s CacheStrategy) String() string {
	return string(s)
}

// ParseCacheStrategy parses a string into a CacheStrategy
func ParseCacheStrategy(s string) (CacheStrategy, error) {
	cs := CacheStrategy(s)
	if !cs.IsValid() {
		return "", fmt.Errorf("invalid cache strategy: %s (must be cache-first, network-first, or stale-while-revalidate)", s)
	}
	return cs, nil
}

// CacheStrategies lists every strategy in presentation order.
func CacheStrategies() []CacheStrategy {
	return []CacheStrategy{CacheFirst, NetworkFirst, StaleWhileRevalidate}
}
