package profile

type service struct {
	storePath string
}

// Service is the interface for the profile resolver.
type Service interface {
	// Resolve returns the ordered, de-duplicated profiles to scan. A non-blank
	// explicit list bypasses the credential store entirely.
	Resolve(explicit string) ([]string, error)
	// StorePath is the credential store consulted when no explicit list is given.
	StorePath() string
}
