package trustpolicy

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

type TrustTier string

const (
	TierRegular      TrustTier = "regular"
	TierTrusted      TrustTier = "trusted"
	TierFullyTrusted TrustTier = "fully_trusted"
)

// Contributor is the verified caller identity attached to a request.
// The zero value classifies as Regular, which is the fail-closed behaviour
// required when the contributor record cannot be resolved.
type Contributor struct {
	UserID             string
	Role               Role
	TrustedContributor bool
}

// Classify maps a contributor record to its trust tier.
// Rules are evaluated in order: admin, moderator, trusted-contributor flag.
func Classify(contributor Contributor) TrustTier {
	switch Role(strings.TrimSpace(strings.ToLower(string(contributor.Role)))) {
	case RoleAdmin:
		return TierFullyTrusted
	case RoleModerator:
		return TierTrusted
	}
	if contributor.TrustedContributor {
		return TierTrusted
	}
	return TierRegular
}

// AtLeastTrusted reports whether the tier may auto-apply content.
func (t TrustTier) AtLeastTrusted() bool {
	return t == TierTrusted || t == TierFullyTrusted
}
