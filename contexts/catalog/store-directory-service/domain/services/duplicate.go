package services

import (
	"net/url"
	"strings"

	"stockist/contexts/catalog/store-directory-service/domain/entities"
)

// maxSimilarStores bounds the advisory list handed to a human for
// disambiguation.
const maxSimilarStores = 5

// DuplicateReport is the outcome of a pre-creation duplicate check. An exact
// match blocks creation outright; similar stores are advisory and the caller
// may override them.
type DuplicateReport struct {
	ExactMatch    *entities.DirectoryStore
	SimilarStores []entities.DirectoryStore
}

func (r DuplicateReport) HasExactMatch() bool {
	return r.ExactMatch != nil
}

// CheckDuplicate compares a candidate against existing listings. Physical
// stores are identified by their external place id; online stores by
// case-insensitive name plus normalized website URL. When no exact match
// exists, same-name same-type listings are collected as advisories.
func CheckDuplicate(candidate entities.DirectoryStore, existing []entities.DirectoryStore) DuplicateReport {
	report := DuplicateReport{}

	candidateName := strings.ToLower(strings.TrimSpace(candidate.Name))
	candidateURL := NormalizeWebsiteURL(candidate.WebsiteURL)
	candidatePlace := strings.TrimSpace(candidate.PlaceID)

	for i := range existing {
		record := existing[i]
		if record.StoreID == candidate.StoreID {
			continue
		}
		switch candidate.Type {
		case entities.StorePhysical:
			if candidatePlace != "" && record.PlaceID == candidatePlace {
				report.ExactMatch = &existing[i]
				return report
			}
		case entities.StoreOnline:
			if record.Type != entities.StoreOnline {
				continue
			}
			if candidateName != "" &&
				strings.ToLower(strings.TrimSpace(record.Name)) == candidateName &&
				candidateURL != "" &&
				NormalizeWebsiteURL(record.WebsiteURL) == candidateURL {
				report.ExactMatch = &existing[i]
				return report
			}
		}
	}

	for i := range existing {
		record := existing[i]
		if record.StoreID == candidate.StoreID || record.Type != candidate.Type {
			continue
		}
		if candidateName == "" || strings.ToLower(strings.TrimSpace(record.Name)) != candidateName {
			continue
		}
		report.SimilarStores = append(report.SimilarStores, record)
		if len(report.SimilarStores) == maxSimilarStores {
			break
		}
	}
	return report
}

// NormalizeWebsiteURL canonicalizes a website address for equality checks:
// lowercase scheme, host and path, the "www." prefix dropped, trailing slash
// stripped. Query strings and fragments do not participate in store identity.
func NormalizeWebsiteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(strings.ToLower(raw))
	if err != nil || parsed.Host == "" {
		// Not parseable as an absolute URL; fall back to plain string rules.
		return strings.TrimSuffix(strings.TrimPrefix(strings.ToLower(raw), "www."), "/")
	}
	host := strings.TrimPrefix(parsed.Host, "www.")
	path := strings.TrimSuffix(parsed.Path, "/")
	return parsed.Scheme + "://" + host + path
}
