package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vango.dev/docs/uihooks/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Hook called outside a component render",
		Detail:   "Hooks keep their state in the rendering component's owner and can only be called while that component renders.",
		DocURL:   docBase + "E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Hook order changed",
		Detail:   "A component must call the same hooks in the same order on every render.",
		DocURL:   docBase + "E002",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Hook slot type mismatch",
		Detail:   "The hook stored in this slot on the previous render has a different type.",
		DocURL:   docBase + "E003",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Component used after unmount",
		Detail:   "The component's owner has been disposed.",
		DocURL:   docBase + "E004",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Component has no event loop",
		Detail:   "The hook writes its results back through the component's Loop, but the component was not mounted on one.",
		DocURL:   docBase + "E005",
	},

	// ============================================
	// Protocol Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryProtocol,
		Message:  "Malformed bridge message",
		Detail:   "A client event could not be decoded.",
		DocURL:   docBase + "E020",
	},
	"E021": {
		Category: CategoryProtocol,
		Message:  "Bridge message missing event type",
		Detail:   "Every client event must name its type (click, keydown, ...).",
		DocURL:   docBase + "E021",
	},

	// ============================================
	// Config Errors (E040-E049)
	// ============================================

	"E040": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The configuration file exists but could not be parsed.",
		DocURL:   docBase + "E040",
	},
	"E041": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   docBase + "E041",
	},

	// ============================================
	// CLI Errors (E060-E069)
	// ============================================

	"E060": {
		Category: CategoryCLI,
		Message:  "Server failed",
		DocURL:   docBase + "E060",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
