package ui

// DisplayConfig holds configuration for UI rendering
type DisplayConfig struct {
	// Truncation limits
	MaxProjectNameLength int
	MaxTitleLength       int
	MaxPreviewLines      int

	DefaultTerminalWidth int
}

// DefaultConfig returns the default display configuration
func DefaultConfig() DisplayConfig {
	return DisplayConfig{
		MaxProjectNameLength: 30,
		MaxTitleLength:       60,
		MaxPreviewLines:      8,
		DefaultTerminalWidth: 120,
	}
}

// Global display configuration (can be overridden)
var Display = DefaultConfig()
