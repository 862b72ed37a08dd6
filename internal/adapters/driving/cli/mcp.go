package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/mcp"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resume to MCP clients",
	Long: `Serves the resume over the Model Context Protocol.

Tools:
  ask_resume      answer a question from the resume
  search_resume   list the resume chunks closest to a query

Resources:
  resumechat://chunks            every chunk of the document
  resumechat://chunks/{chunkId}  one chunk's text

JSON-RPC over stdio is used unless --port is given, in which case the
streamable HTTP transport listens on that port.

To register with a desktop assistant, point it at this binary:
  {"mcpServers": {"resumechat": {"command": "resumechat", "args": ["mcp", "serve"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if err := requireServices(); err != nil {
		return err
	}
	chat, err := services.Chat()
	if err != nil {
		return err
	}

	ports := &mcp.Ports{Chat: chat}
	if doc, ok := chat.(driving.DocumentService); ok {
		ports.Document = doc
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}
	addr := fmt.Sprintf(":%d", mcpPort)
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
