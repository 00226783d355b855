package domain

// ThemeKeyPrefix namespaces theme settings in the settings table. The API
// exposes keys without the prefix.
const ThemeKeyPrefix = "theme_"

// Setting is a persisted key/value pair.
type Setting struct {
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}

// KnownThemeKeys are the keys the admin appearance editor writes. Arbitrary
// custom keys are still accepted; this set exists so callers can distinguish
// editor-managed keys from ad-hoc ones.
var KnownThemeKeys = map[string]struct{}{
	"primaryColor":     {},
	"secondaryColor":   {},
	"backgroundColor":  {},
	"textColor":        {},
	"headerBackground": {},
	"footerBackground": {},
	"buttonStyle":      {},
	"fontFamily":       {},
	"logoUrl":          {},
	"heroTitle":        {},
	"heroSubtitle":     {},
	"customCSS":        {},
}

// ThemeSettings is the flat theme mapping returned to and accepted from the
// admin panel. Keys not present simply fall back to client-side defaults.
type ThemeSettings map[string]string
