// Package core contains the business logic for the Textforge API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (FormatKind, Report, Opcode, Hunk, Node)
// - document: Order-preserving document values decoded from JSON, YAML, TOML and XML
// - formatter: Per-format pretty printing with pluggable style strategies
// - validator: JSON Schema and XSD validation plus YAML linting
// - tree: Collapsible tree building for structured documents
// - diff: Line differencing with unified, side-by-side and table renderings
// - convert: Conversions between JSON, XML, TOML, TOON, HTML and Markdown
// - workbench: Service that fronts every operation with caching and limits
// - workers: Fixed-size worker pool used for batch formatting
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, logger, command runner)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No web framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
//
// # Usage Example
//
//	import (
//	    "textforge-api/core/domain"
//	    "textforge-api/core/interfaces"
//	    "textforge-api/core/workbench"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:  myCache,  // implements interfaces.Cache
//	    Logger: myLogger, // implements interfaces.Logger
//	}
//
//	service := workbench.NewService(deps, nil, flags, workbench.Config{})
//	res, err := service.Format(ctx, `{"a":1}`, domain.FormatJSON, false)
package core
