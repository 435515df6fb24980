package pagination

import "fmt"

// Profile bounds and defaults the page size
type Profile struct {
	Name            string
	DefaultPageSize int
	MaxPageSize     int
}

var (
	// Standard suits most list endpoints
	Standard = Profile{Name: "standard", DefaultPageSize: 10, MaxPageSize: 100}

	// Heavy suits endpoints that return many small rows
	Heavy = Profile{Name: "heavy", DefaultPageSize: 100, MaxPageSize: 1000}
)

// MinPageSize is the lower page size bound of every profile
const MinPageSize = 1

// Bound renders the closed page size interval, e.g. [1, 100]
func (p Profile) Bound() string {
	return fmt.Sprintf("[%d, %d]", MinPageSize, p.MaxPageSize)
}

func (p Profile) sizeTag() string {
	return fmt.Sprintf("min=%d,max=%d", MinPageSize, p.MaxPageSize)
}
