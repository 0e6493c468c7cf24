package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/pixel-tools/internal/imaging"
)

// ProtocolVersion is the MCP revision the server speaks.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeToolFailed     = -32000
)

// maxLine bounds a single request line.
const maxLine = 1 << 20

// Request is an incoming JSON-RPC 2.0 request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response carries either Result or Error.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError is the error member of a Response.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func reply(id, result interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

func fail(id interface{}, code int, msg string, data interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: msg, Data: data}}
}

// Server answers MCP requests with the toolkit's tools.
type Server struct {
	cache   *imaging.Cache
	version string
}

// New creates a server that reads images through cache. A nil cache gets a
// fresh one with the built-in handlers.
func New(cache *imaging.Cache, version string) *Server {
	if cache == nil {
		cache = imaging.NewCache(nil)
	}
	return &Server{cache: cache, version: version}
}

// Run serves newline-delimited requests from r and writes one response line
// per request to w. It returns when r is exhausted or ctx is canceled.
// Lines that are not JSON are logged and skipped.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewScanner(r)
	in.Buffer(make([]byte, 0, 64*1024), maxLine)
	out := json.NewEncoder(w)

	for in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := in.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.WithError(err).Warn("failed to parse request")
			continue
		}

		resp := s.dispatch(ctx, &req)
		if resp == nil {
			continue
		}
		if err := out.Encode(resp); err != nil {
			log.WithError(err).WithField("method", req.Method).Error("failed to encode response")
		}
	}

	if err := in.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

// dispatch answers req. Notifications get a nil response.
func (s *Server) dispatch(ctx context.Context, req *Request) *Response {
	log.WithField("method", req.Method).Debug("request")

	switch req.Method {
	case "initialize":
		return reply(req.ID, s.initializeResult())
	case "notifications/initialized":
		return nil
	case "tools/list":
		return reply(req.ID, map[string]interface{}{"tools": GetToolDefinitions()})
	case "tools/call":
		return s.callTool(ctx, req)
	case "ping":
		return reply(req.ID, map[string]interface{}{})
	}
	return fail(req.ID, codeMethodNotFound, "Method not found: "+req.Method, nil)
}

func (s *Server) initializeResult() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "pixel-tools",
			"version": s.version,
		},
	}
}
