// Package plugins holds the built-in pixel transformations.
//
// A plugin is an ordinary function of an options value and a *pixel.Bitmap.
// It mutates the buffer behind the view and returns nothing; there is no
// registry and built-ins carry no special status. Options types may provide
// a Default method, which imaging.ApplyDefault uses when the caller supplies
// no options.
//
//	imaging.Apply(img, plugins.Flip, plugins.FlipOptions{Vertical: true})
//	imaging.ApplyDefault(img, plugins.Circle)
//
// Plugins cannot fail. Options that make no sense for the image at hand
// (a zero-size crop, a negative blur radius) leave the buffer untouched.
package plugins
