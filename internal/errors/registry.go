package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]Template{
	// Configuration (E100-E199)
	"E101": {
		Category: CategoryConfig,
		Message:  "Failed to read configuration",
		Detail:   "The configuration file exists but could not be read or parsed as YAML.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid bridge configuration",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid origin",
		Detail:   "The origin must be an absolute URL with a scheme and host, such as http://localhost.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "Accepted levels are debug, info, warn and error.",
	},

	// Routing (E200-E299)
	"E201": {
		Category: CategoryRouting,
		Message:  "Malformed URL",
		Detail:   "The URL could not be parsed after resolving it against the origin.",
	},

	// CLI (E300-E399)
	"E301": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
}

// Register adds or replaces an error template.
func Register(code string, t Template) {
	registry[code] = t
}

// Lookup returns the template for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
