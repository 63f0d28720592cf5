package main

import (
	"context"
	"fmt"

	"github.com/halcyonic/strata/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes strata's analyzers
as tools that LLMs can invoke. This enables AI assistants to extract
structured facts from Python codebases instead of reading raw source.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "strata": {
        "command": "strata",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_facts         Per-file facts and project metrics
  - analyze_complexity    Cyclomatic complexity and nesting depth
  - analyze_graph         Module dependency graph
  - analyze_architecture  Bottlenecks, god modules, cycles, health score`,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the MCP server.json manifest",
				Action: runMCPManifestCmd,
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}

func runMCPManifestCmd(c *cli.Context) error {
	data, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
