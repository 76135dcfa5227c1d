package weave

// Version is the library version, surfaced by the CLI and the MCP server.
var Version = "0.3.0"
