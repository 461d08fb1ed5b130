package services

import trustpolicy "stockist/contexts/moderation-trust/trust-policy"

var editableFields = map[trustpolicy.EntityKind][]string{
	trustpolicy.KindProduct: {"name", "description", "brand", "category", "image_url", "website_url"},
	trustpolicy.KindStore:   {"name", "website_url", "address", "phone", "opening_hours"},
	trustpolicy.KindPage:    {"headline", "summary", "body"},
}

// FieldAllowed reports whether the field may be edited on the given kind.
func FieldAllowed(kind trustpolicy.EntityKind, field string) bool {
	for _, allowed := range editableFields[kind] {
		if allowed == field {
			return true
		}
	}
	return false
}

// SupportsImplicitCreation reports whether a missing target of this kind
// materializes lazily on its first edit. Brand/city pages exist only as
// catalog evidence until someone writes to them.
func SupportsImplicitCreation(kind trustpolicy.EntityKind) bool {
	return kind == trustpolicy.KindPage
}
