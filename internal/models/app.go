package models

// AppRecord represents one discovered application bundle.
// Records are rebuilt from scratch on every scan and never persisted;
// IDs are only meaningful within a single scan's result list.
type AppRecord struct {
	ID       string `json:"id"`       // Sequential, assigned in discovery order
	Name     string `json:"name"`     // Bundle filename without .app
	Path     string `json:"path"`     // Absolute bundle path, unique per scan
	Category string `json:"category"` // Guessed or overridden label
}

// Override is a user-chosen category for a specific bundle path.
// A nil Category leaves the guessed label in effect.
type Override struct {
	Category *string `json:"category"`
}

// Canonical category labels assigned by the guesser.
const (
	CategoryDevelopment = "Development"
	CategorySocial      = "Social"
	CategoryMedia       = "Media"
	CategoryInternet    = "Internet"
	CategoryDesign      = "Design"
	CategorySystem      = "System"
	CategoryOther       = "Other"
)

// Categories lists the canonical labels in display order.
func Categories() []string {
	return []string{
		CategoryDevelopment,
		CategorySocial,
		CategoryMedia,
		CategoryInternet,
		CategoryDesign,
		CategorySystem,
		CategoryOther,
	}
}
