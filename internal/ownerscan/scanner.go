// Package ownerscan looks up property owner names for incident addresses on
// the Rockland towns' public tax-roll portals.
package ownerscan

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	userAgent     = "firewatch-tracker/1.0"
	portalTimeout = 15 * time.Second
)

// Portal describes one town's tax-roll search endpoint. The form takes a
// house number and a street and answers with an HTML detail table.
type Portal struct {
	Town   string
	URL    string
	Source string
}

// DefaultPortals lists the public search endpoints for the supported towns.
// Ramapo and Stony Point answer the same BAS-style form search as the others.
func DefaultPortals() []Portal {
	return []Portal{
		{Town: "Clarkstown", URL: "https://www.townofclarkstown.org/cn/TaxSearch/index.cfm", Source: "Clarkstown Tax Search"},
		{Town: "Orangetown", URL: "https://www.orangetown.com/departments/receiver-of-taxes/tax-bill-search/", Source: "Orangetown Tax Search"},
		{Town: "Ramapo", URL: "https://ramapo.prosgar.com/", Source: "Ramapo Property Search"},
		{Town: "Stony Point", URL: "https://www.townofstonypoint.org/tax-search", Source: "Stony Point Tax Search"},
	}
}

// Scanner runs owner lookups town by town with a fixed delay between
// requests to the same portal.
type Scanner struct {
	portals map[string]Portal
	delay   time.Duration
	logger  *slog.Logger
}

// NewScanner builds a scanner over the given portals.
func NewScanner(portals []Portal, delay time.Duration, logger *slog.Logger) *Scanner {
	byTown := make(map[string]Portal, len(portals))
	for _, p := range portals {
		byTown[p.Town] = p
	}
	return &Scanner{portals: byTown, delay: delay, logger: logger}
}

// Scan looks up the owner for every address that names a supported town.
// Addresses outside the supported towns are skipped and counted. Results
// keep town order, then the input order within each town. Lookup failures
// are recorded per address, never fatal.
func (s *Scanner) Scan(addresses []string) []Result {
	grouped, unknown := GroupByTown(addresses)
	if unknown > 0 {
		s.logger.Warn("skipping addresses outside supported towns", "count", unknown)
	}

	var results []Result
	for _, town := range Towns {
		addrs := grouped[town]
		if len(addrs) == 0 {
			continue
		}
		portal, ok := s.portals[town]
		if !ok {
			s.logger.Warn("no portal configured", "town", town, "addresses", len(addrs))
			continue
		}
		s.logger.Info("scanning town", "town", town, "addresses", len(addrs))
		results = append(results, s.scanTown(portal, addrs)...)
	}
	return results
}

// scanTown posts each address to the portal form and reads the owner name
// off the response table. Requests run sequentially, so the per-request
// state captured by the callbacks is safe.
func (s *Scanner) scanTown(portal Portal, addresses []string) []Result {
	var owner string

	c := colly.NewCollector(colly.AllowURLRevisit())
	c.UserAgent = userAgent
	c.SetRequestTimeout(portalTimeout)
	if s.delay > 0 {
		_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: s.delay})
	}

	c.OnHTML("tr", func(e *colly.HTMLElement) {
		if owner != "" {
			return
		}
		if labelMatches(e.ChildText("td:nth-child(1)"), "Owner Name") {
			owner = e.ChildText("td:nth-child(2)")
		}
	})

	results := make([]Result, 0, len(addresses))
	for _, addr := range addresses {
		owner = ""

		number, street := SplitAddress(addr)
		err := c.Post(portal.URL, map[string]string{
			"house_number": number,
			"street":       street,
		})

		r := Result{Address: addr, Owner: owner, Source: portal.Source}
		switch {
		case err != nil:
			r.Status = StatusError
			s.logger.Error("portal lookup failed", "town", portal.Town, "address", addr, "error", err)
		case owner == "":
			r.Status = StatusNotFound
			s.logger.Debug("owner not found", "town", portal.Town, "address", addr)
		default:
			r.Status = StatusSuccess
			s.logger.Debug("owner found", "town", portal.Town, "address", addr)
		}
		results = append(results, r)
	}
	return results
}

func labelMatches(got, want string) bool {
	return strings.EqualFold(strings.TrimSpace(got), want)
}
