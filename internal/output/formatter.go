package output

import (
	"fmt"

	"github.com/finsim/wealth-projector/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(summary *domain.ProjectionSummary) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	JSONFormatter{},
	BandsCSVFormatter{},
	ConsoleFormatter{},
}

// ByName resolves a built-in formatter by its short name.
func ByName(name string) (Formatter, error) {
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}
