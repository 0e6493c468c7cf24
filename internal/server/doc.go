// Package server implements the MCP (Model Context Protocol) server for the
// pixel toolkit.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image information:
//   - image_load: dimensions, format, source encoding, file size
//   - image_dimensions: width and height
//
// Color:
//   - image_sample_color: color at one pixel or at a list of points
//   - image_dominant_colors: quantized palette
//
// Output:
//   - image_export_base64: data URI of the image
//
// Plugins:
//   - image_apply: run a named plugin with an options object
//   - image_<plugin>: one tool per catalog plugin, options given inline
//
// Plugin tools return the result as a data URI, or write it in the source
// format when an output path is given.
//
// # Image Caching
//
// Images are read through an imaging.Cache shared with the caller. Tools get
// private copies, so applying a plugin never changes what later calls see.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and a ToolErrorData carrying the error kind ("io", "handler",
// "invalid_image" or "other") and message.
package server
