package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/pixel-tools/internal/catalog"
	"github.com/ironsheep/pixel-tools/internal/imaging"
)

// ToolCallParams are the params of a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke, e.g. "image_load" or "image_flip".
	Name string `json:"name"`

	// Arguments holds the tool-specific parameters.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolErrorData is the data member of a failed tool call.
type ToolErrorData struct {
	// Kind is "io", "handler", "invalid_image" or "other".
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// toolFunc runs one tool. Its result is marshaled as the text content of
// the response.
type toolFunc func(s *Server, ctx context.Context, args json.RawMessage) (interface{}, error)

var fixedTools = map[string]toolFunc{
	"image_load":            (*Server).imageLoad,
	"image_dimensions":      (*Server).imageDimensions,
	"image_sample_color":    (*Server).imageSampleColor,
	"image_dominant_colors": (*Server).imageDominantColors,
	"image_export_base64":   (*Server).imageExportBase64,
	"image_apply":           (*Server).imageApply,
}

// callTool answers a tools/call request. A successful result is wrapped in
// MCP's content format:
//
//	{"content": [{"type": "text", "text": "<JSON result>"}]}
//
// A failed tool yields code -32000 with a ToolErrorData.
func (s *Server) callTool(ctx context.Context, req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return fail(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		kind := imaging.KindOf(err).String()
		log.WithError(err).WithFields(log.Fields{
			"tool": params.Name,
			"kind": kind,
		}).Debug("tool failed")
		return fail(req.ID, codeToolFailed, "Tool execution failed", ToolErrorData{Kind: kind, Error: err.Error()})
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fail(req.ID, codeToolFailed, "Tool execution failed", ToolErrorData{Kind: "other", Error: err.Error()})
	}
	return reply(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": string(text)},
		},
	})
}

// executeTool runs a fixed tool, or the catalog plugin named after the
// "image_" prefix.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if fn, ok := fixedTools[name]; ok {
		return fn(s, ctx, args)
	}
	if plugin, ok := strings.CutPrefix(name, pluginToolPrefix); ok {
		if e, ok := catalog.Lookup(plugin); ok {
			return s.pluginTool(ctx, e, args)
		}
	}
	return nil, fmt.Errorf("unknown tool: %s", name)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("missing arguments")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

type pathArgs struct {
	Path string `json:"path"`
}

// load loads the image named by the path argument.
func (s *Server) load(ctx context.Context, args json.RawMessage) (*imaging.Image, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.cache.Load(ctx, a.Path)
}

func (s *Server) imageLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadInfo(ctx, s.cache, a.Path)
}

func (s *Server) imageDimensions(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(ctx, s.cache, a.Path)
}

func (s *Server) imageSampleColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a struct {
		X      *int                   `json:"x"`
		Y      *int                   `json:"y"`
		Points []imaging.LabeledPoint `json:"points"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 && (a.X == nil || a.Y == nil) {
		return nil, fmt.Errorf("either x and y or points is required")
	}

	img, err := s.load(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(a.Points) > 0 {
		return imaging.SampleColors(img, a.Points)
	}
	return imaging.SampleColor(img, *a.X, *a.Y)
}

func (s *Server) imageDominantColors(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a struct {
		Count int `json:"count"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count <= 0 {
		a.Count = 5
	}
	img, err := s.load(ctx, args)
	if err != nil {
		return nil, err
	}
	colors, err := imaging.DominantColors(img, a.Count)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"colors": colors}, nil
}

// ImageResult describes an image produced by a tool.
type ImageResult struct {
	Plugin string `json:"plugin,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`

	// Exactly one of OutputPath and DataURI is set.
	OutputPath string `json:"output_path,omitempty"`
	DataURI    string `json:"data_uri,omitempty"`
}

func (s *Server) imageExportBase64(ctx context.Context, args json.RawMessage) (interface{}, error) {
	img, err := s.load(ctx, args)
	if err != nil {
		return nil, err
	}
	return imageResult(img, "", "")
}

// imageResult writes img to output when set, or inlines it as a data URI.
func imageResult(img *imaging.Image, plugin, output string) (*ImageResult, error) {
	res := &ImageResult{
		Plugin: plugin,
		Width:  img.Width(),
		Height: img.Height(),
		Format: img.Format(),
	}
	if output != "" {
		if err := img.Write(output); err != nil {
			return nil, err
		}
		res.OutputPath = output
		return res, nil
	}

	uri, err := img.ExportBase64()
	if err != nil {
		return nil, err
	}
	res.DataURI = uri
	return res, nil
}

func (s *Server) imageApply(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a struct {
		Path    string          `json:"path"`
		Plugin  string          `json:"plugin"`
		Options json.RawMessage `json:"options"`
		Output  string          `json:"output"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	e, ok := catalog.Lookup(a.Plugin)
	if !ok {
		return nil, fmt.Errorf("unknown plugin %q", a.Plugin)
	}
	return s.apply(ctx, e, a.Path, a.Output, a.Options)
}

// pluginTool runs an image_<plugin> tool. Its arguments are the plugin
// options next to path and output.
func (s *Server) pluginTool(ctx context.Context, e *catalog.Entry, args json.RawMessage) (interface{}, error) {
	var fields map[string]json.RawMessage
	if err := decodeArgs(args, &fields); err != nil {
		return nil, err
	}

	var path, output string
	for name, dst := range map[string]*string{"path": &path, "output": &output} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		delete(fields, name)
	}

	opts, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, e, path, output, opts)
}

func (s *Server) apply(ctx context.Context, e *catalog.Entry, path, output string, opts json.RawMessage) (*ImageResult, error) {
	img, err := s.cache.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := e.Apply(img, opts); err != nil {
		return nil, err
	}
	return imageResult(img, e.Name, output)
}
