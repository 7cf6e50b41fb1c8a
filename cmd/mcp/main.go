// ABOUTME: Main entry point for the Textforge MCP server
// ABOUTME: Serves the workbench tools over stdio

package main

import (
	"fmt"
	"os"

	"textforge-api/api"
	"textforge-api/api/mcptools"
	"textforge-api/infrastructure/bootstrap"
	"textforge-api/pkg/config"
	"textforge-api/pkg/featureflags"

	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the protocol
	if cfg.Log.File == "" {
		cfg.Log.File = "textforge-mcp.log"
	}

	app, err := bootstrap.New(cfg, featureflags.NewEnvManager("FEATURE_"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	s := server.NewMCPServer(
		"textforge",
		api.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)
	mcptools.New(app.Service, app.Deps.Logger).Register(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
