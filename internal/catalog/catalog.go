// Package catalog names the built-in plugins so that outer surfaces can apply
// them from JSON options. The command line and the MCP server both read it.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ironsheep/pixel-tools/internal/imaging"
	"github.com/ironsheep/pixel-tools/internal/plugins"
)

// Entry is one named plugin.
type Entry struct {
	Name        string
	Description string
	// Properties is the JSON schema "properties" object of the options.
	Properties map[string]interface{}

	apply    func(im *imaging.Image, raw json.RawMessage) error
	validate func(raw json.RawMessage) error
}

// Apply decodes raw over the plugin's default options and runs the plugin
// on im. An empty or null raw applies the defaults. Unknown option names are
// rejected.
func (e *Entry) Apply(im *imaging.Image, raw json.RawMessage) error {
	return e.apply(im, raw)
}

// Validate reports whether raw decodes as options of this plugin.
func (e *Entry) Validate(raw json.RawMessage) error {
	return e.validate(raw)
}

// Schema returns the JSON schema of the options object.
func (e *Entry) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"properties":           e.Properties,
		"additionalProperties": false,
	}
}

func entry[O any](name, desc string, plugin plugins.Plugin[O], props map[string]interface{}) *Entry {
	return &Entry{
		Name:        name,
		Description: desc,
		Properties:  props,
		apply: func(im *imaging.Image, raw json.RawMessage) error {
			opts, err := decode[O](raw)
			if err != nil {
				return fmt.Errorf("%s options: %w", name, err)
			}
			return imaging.Apply(im, plugin, opts)
		},
		validate: func(raw json.RawMessage) error {
			if _, err := decode[O](raw); err != nil {
				return fmt.Errorf("%s options: %w", name, err)
			}
			return nil
		},
	}
}

func decode[O any](raw json.RawMessage) (O, error) {
	opts := plugins.DefaultOf[O]()
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return opts, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	err := dec.Decode(&opts)
	return opts, err
}

func prop(typ, desc string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": desc}
}

var entries = []*Entry{
	entry("flip", "Mirror the image horizontally and/or vertically. Defaults to a horizontal flip; pass horizontal:false to flip vertically only.",
		plugins.Flip, map[string]interface{}{
			"horizontal": prop("boolean", "Mirror left to right (default true)"),
			"vertical":   prop("boolean", "Mirror top to bottom (default false)"),
		}),
	entry("circle", "Make everything outside a circle transparent, with an anti-aliased rim.",
		plugins.Circle, map[string]interface{}{
			"radius": prop("integer", "Radius in pixels (default min(width, height)/2)"),
			"x":      prop("integer", "Center X (default width/2)"),
			"y":      prop("integer", "Center Y (default height/2)"),
		}),
	entry("resize", "Scale the image. A zero width or height keeps the aspect ratio.",
		plugins.Resize, map[string]interface{}{
			"width":  prop("integer", "Target width in pixels"),
			"height": prop("integer", "Target height in pixels"),
			"filter": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"lanczos", "catmullrom", "linear", "box", "nearest"},
				"description": "Resampling filter (default lanczos)",
			},
		}),
	entry("crop", "Keep a rectangular region, clipped to the image.",
		plugins.Crop, map[string]interface{}{
			"x":      prop("integer", "Left edge"),
			"y":      prop("integer", "Top edge"),
			"width":  prop("integer", "Region width"),
			"height": prop("integer", "Region height"),
		}),
	entry("rotate", "Rotate counter-clockwise. Non right angles grow the canvas and fill with transparency.",
		plugins.Rotate, map[string]interface{}{
			"degrees": prop("number", "Counter-clockwise angle in degrees"),
		}),
	entry("grayscale", "Replace color with luminance, keeping alpha.",
		plugins.Grayscale, map[string]interface{}{}),
	entry("blur", "Gaussian blur.",
		plugins.Blur, map[string]interface{}{
			"radius": prop("number", "Blur radius in pixels (default 1)"),
		}),
	entry("hsl", "Shift hue and offset saturation and lightness.",
		plugins.HSL, map[string]interface{}{
			"hue":        prop("number", "Hue rotation in degrees"),
			"saturation": prop("number", "Saturation offset in [-1, 1]"),
			"lightness":  prop("number", "Lightness offset in [-1, 1]"),
		}),
	entry("edges", "Canny edge map: white edges on black, alpha kept.",
		plugins.Edges, map[string]interface{}{
			"low":  prop("integer", "Low hysteresis threshold, 0-255 (default 50)"),
			"high": prop("integer", "High hysteresis threshold, 0-255 (default 150)"),
		}),
	entry("grid", "Overlay a labeled coordinate grid.",
		plugins.Grid, map[string]interface{}{
			"spacing": prop("integer", "Line spacing in pixels (default 50)"),
			"color":   prop("string", "Line color as #RGB, #RRGGBB or #RRGGBBAA (default #FF000080)"),
			"labels":  prop("boolean", "Print coordinates at intersections (default true)"),
		}),
}

var byName = func() map[string]*Entry {
	m := make(map[string]*Entry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}()

// Lookup returns the entry called name.
func Lookup(name string) (*Entry, bool) {
	e, ok := byName[name]
	return e, ok
}

// Entries returns every entry sorted by name.
func Entries() []*Entry {
	out := make([]*Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Apply runs the plugin called name on im.
func Apply(im *imaging.Image, name string, raw json.RawMessage) error {
	e, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown plugin %q", name)
	}
	return e.Apply(im, raw)
}
