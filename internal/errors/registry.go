package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Storage Errors (M001-M002, M006)
	// ============================================

	"M001": {
		Category:   CategoryStorage,
		Message:    "Storage key already registered",
		Suggestion: "Pick a unique key per persisted value",
	},
	"M002": {
		Category:   CategoryStorage,
		Message:    "Storage key not registered",
		Suggestion: "Create the storage with storage.New before reading or writing it",
	},
	"M006": {
		Category: CategoryStorage,
		Message:  "Storage backend failure",
	},

	// ============================================
	// Runtime Errors (M003-M005, M008)
	// ============================================

	"M003": {
		Category:   CategoryRuntime,
		Message:    "Event binding not found",
		Suggestion: "Give the binding a Name in AddEvent before removing it",
	},
	"M004": {
		Category:   CategoryRuntime,
		Message:    "Mount target not found",
		Suggestion: "Render the parent component first, or use the ignore mount policy",
	},
	"M005": {
		Category:   CategoryRuntime,
		Message:    "Update cycle detected",
		Suggestion: "A computation writes a signal it depends on; break the loop or guard the write",
	},
	"M008": {
		Category: CategoryRuntime,
		Message:  "Markup could not be parsed",
	},

	// ============================================
	// Config / Protocol / CLI Errors (M007, M009-M010)
	// ============================================

	"M007": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"M009": {
		Category: CategoryProtocol,
		Message:  "Invalid client message",
	},
	"M010": {
		Category: CategoryCLI,
		Message:  "Command failed",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
