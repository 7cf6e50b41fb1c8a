// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache memoizes rendered results; nil disables memoization
	Cache Cache

	// Logger provides structured logging
	Logger Logger

	// Runner executes external style fixers; nil disables command strategies
	Runner CommandRunner
}
