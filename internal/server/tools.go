package server

import (
	"github.com/ironsheep/pixel-tools/internal/catalog"
)

// Tool is an entry of the tools/list result.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pluginToolPrefix names the per-plugin tools: image_flip, image_blur, ...
const pluginToolPrefix = "image_"

type props = map[string]interface{}

func object(p props, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": p,
		"required":   required,
	}
}

func field(typ, desc string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": desc}
}

var (
	pathField   = field("string", "Absolute path to the image file")
	outputField = field("string", "Optional path to write the result to, in the source format. Without it the result is returned as a data URI.")
)

// GetToolDefinitions lists the fixed tools followed by one tool per catalog
// plugin.
func GetToolDefinitions() []Tool {
	point := object(props{
		"x":     field("integer", "X coordinate"),
		"y":     field("integer", "Y coordinate"),
		"label": field("string", "Echoed in the result"),
	}, "x", "y")

	count := field("integer", "Number of colors to return. Default 5")
	count["default"] = 5

	plugin := field("string", "Plugin name")
	plugin["enum"] = pluginNames()

	tools := []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, source pixel encoding and file size.",
			InputSchema: object(props{"path": pathField}, "path"),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: object(props{"path": pathField}, "path"),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel as hex, packed integer, RGB, RGBA and HSL. Pass points instead of x/y to sample several coordinates at once.",
			InputSchema: object(props{
				"path": pathField,
				"x":    field("integer", "X coordinate (0-based, from left)"),
				"y":    field("integer", "Y coordinate (0-based, from top)"),
				"points": map[string]interface{}{
					"type":        "array",
					"description": "Points to sample",
					"items":       point,
				},
			}, "path"),
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most frequent colors, quantized to 16 levels per channel. Fully transparent pixels are ignored.",
			InputSchema: object(props{"path": pathField, "count": count}, "path"),
		},
		{
			Name:        "image_export_base64",
			Description: "Return the image re-encoded in its source format as a data URI.",
			InputSchema: object(props{"path": pathField}, "path"),
		},
		{
			Name:        "image_apply",
			Description: "Apply a named plugin with JSON options. Options left out keep the plugin defaults.",
			InputSchema: object(props{
				"path":    pathField,
				"plugin":  plugin,
				"options": field("object", "Plugin options"),
				"output":  outputField,
			}, "path", "plugin"),
		},
	}

	for _, e := range catalog.Entries() {
		p := props{"path": pathField, "output": outputField}
		for k, v := range e.Properties {
			p[k] = v
		}
		tools = append(tools, Tool{
			Name:        pluginToolPrefix + e.Name,
			Description: e.Description,
			InputSchema: object(p, "path"),
		})
	}
	return tools
}

func pluginNames() []string {
	var names []string
	for _, e := range catalog.Entries() {
		names = append(names, e.Name)
	}
	return names
}
