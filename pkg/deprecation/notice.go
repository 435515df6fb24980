package deprecation

import (
	"fmt"
	"strings"
)

// Product is the name deprecation notices refer to
const Product = "Crypticorn"

// Version is a major.minor release
type Version struct {
	Major int
	Minor int
}

// V is shorthand for Version{major, minor}
func V(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// NextMajor returns the first release of the following major version
func (v Version) NextMajor() Version {
	return Version{Major: v.Major + 1}
}

// Notice is a warning about the lifecycle of an API surface
type Notice interface {
	fmt.Stringer
	Kind() string
}

// Deprecation marks an API surface scheduled for removal.
type Deprecation struct {
	Message         string
	Since           Version
	ExpectedRemoval Version
}

// New creates a deprecation notice. Trailing dots are stripped from the message
// and removal defaults to the next major release after since.
func New(message string, since Version) *Deprecation {
	return &Deprecation{
		Message:         strings.TrimRight(message, "."),
		Since:           since,
		ExpectedRemoval: since.NextMajor(),
	}
}

// RemovedIn overrides the expected removal version
func (d *Deprecation) RemovedIn(v Version) *Deprecation {
	d.ExpectedRemoval = v
	return d
}

func (d *Deprecation) Kind() string { return "deprecation" }

func (d *Deprecation) String() string {
	return fmt.Sprintf("%s. Deprecated in %s v%s to be removed in v%s.",
		d.Message, Product, d.Since, d.ExpectedRemoval)
}

func (d *Deprecation) Error() string {
	return d.String()
}

// Experimental marks an API surface that may change without notice.
type Experimental struct {
	Message string
}

// NewExperimental creates an experimental notice
func NewExperimental(message string) *Experimental {
	return &Experimental{Message: message}
}

func (e *Experimental) Kind() string { return "experimental" }

func (e *Experimental) String() string {
	return e.Message
}
