package domain

import "strings"

// Platform identifies which verification scheme applies to a webhook.
type Platform string

const (
	PlatformClerk        Platform = "clerk"
	PlatformStripe       Platform = "stripe"
	PlatformGitHub       Platform = "github"
	PlatformDodoPayments Platform = "dodopayments"
	PlatformCustom       Platform = "custom"
)

// Platforms lists every platform with a registered verifier.
var Platforms = []Platform{
	PlatformClerk,
	PlatformStripe,
	PlatformGitHub,
	PlatformDodoPayments,
	PlatformCustom,
}

// ParsePlatform normalises a stored or configured platform name.
// Unknown names are returned as-is so the dispatcher can apply its policy.
func ParsePlatform(s string) Platform {
	return Platform(strings.ToLower(strings.TrimSpace(s)))
}

// IsKnown reports whether p has a registered verifier.
func (p Platform) IsKnown() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// DisplayName is the human-readable platform name used in error messages.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformClerk:
		return "Clerk"
	case PlatformStripe:
		return "Stripe"
	case PlatformGitHub:
		return "GitHub"
	case PlatformDodoPayments:
		return "Dodo Payments"
	case PlatformCustom:
		return "Custom"
	}
	return string(p)
}
