package ownerscan

import (
	"regexp"
	"strings"
)

// Towns covered by the lookup, in scan order.
var Towns = []string{"Clarkstown", "Orangetown", "Ramapo", "Stony Point"}

var houseNumberRe = regexp.MustCompile(`^(\d+)\s+(.*)`)

// DetectTown returns the supported town named anywhere in the address, or ""
// when the address names none. Matching is case-insensitive.
func DetectTown(address string) string {
	lower := strings.ToLower(address)
	for _, town := range Towns {
		if strings.Contains(lower, strings.ToLower(town)) {
			return town
		}
	}
	return ""
}

// GroupByTown buckets addresses by detected town and reports how many named
// no supported town.
func GroupByTown(addresses []string) (map[string][]string, int) {
	grouped := make(map[string][]string)
	unknown := 0
	for _, addr := range addresses {
		town := DetectTown(addr)
		if town == "" {
			unknown++
			continue
		}
		grouped[town] = append(grouped[town], addr)
	}
	return grouped, unknown
}

// SplitAddress separates a leading house number from the street remainder.
// Addresses without a leading number search on the full string.
func SplitAddress(address string) (number, street string) {
	if m := houseNumberRe.FindStringSubmatch(address); m != nil {
		return m[1], m[2]
	}
	return "", address
}
