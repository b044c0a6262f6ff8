package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (K100-K199)
	// ============================================

	"K101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"K102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "krow.toml could not be decoded.",
	},
	"K103": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "log_level must be one of debug, info, warn or error.",
	},
	"K104": {
		Category: CategoryConfig,
		Message:  "Invalid preview address",
	},
	"K105": {
		Category: CategoryConfig,
		Message:  "Invalid export settings",
	},

	// ============================================
	// CLI Errors (K200-K299)
	// ============================================

	"K201": {
		Category: CategoryCLI,
		Message:  "Unknown demo application",
	},
	"K202": {
		Category: CategoryCLI,
		Message:  "Invalid diff input",
	},

	// ============================================
	// Export Errors (K300-K399)
	// ============================================

	"K301": {
		Category: CategoryExport,
		Message:  "Snapshot export failed",
	},
	"K302": {
		Category: CategoryExport,
		Message:  "Render failed",
	},

	// ============================================
	// Preview Errors (K400-K499)
	// ============================================

	"K401": {
		Category: CategoryPreview,
		Message:  "Preview server failed",
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

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
