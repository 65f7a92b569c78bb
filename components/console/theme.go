package console

// BadgeTheme maps status and role values to presentation class tokens. The
// badge itself is one canonical component; styling variants are configuration.
type BadgeTheme struct {
	Classes  map[string]string
	Fallback string
}

// DefaultBadgeTheme covers the booking statuses and user roles.
func DefaultBadgeTheme() BadgeTheme {
	return BadgeTheme{
		Classes: map[string]string{
			"pending":   "badge badge-yellow",
			"confirmed": "badge badge-green",
			"cancelled": "badge badge-red",
			"completed": "badge badge-blue",
			"admin":     "badge badge-purple",
			"user":      "badge badge-gray",
		},
		Fallback: "badge badge-gray",
	}
}

// Class resolves the class tokens for a status/role value.
func (t BadgeTheme) Class(value string) string {
	if cls, ok := t.Classes[value]; ok {
		return cls
	}
	return t.Fallback
}
