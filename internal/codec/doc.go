// Package codec implements the format handlers that turn container bytes into
// the canonical pixel buffer and back.
//
// Bitstream work is delegated to existing codecs: image/png and image/jpeg
// from the standard library, golang.org/x/image for BMP and TIFF, and
// github.com/disintegration/imaging for PNG/JPEG encoding options. What this
// package adds is the normalization step: every decoded image is first
// reduced to a Frame in its source encoding, then converted to 8-bit RGBA by
// Normalize.
//
// # Encodings
//
//   - gray8, gray16: replicated into R, G, B; 16-bit samples scaled by 255/65535
//   - indexed: per-pixel palette byte, used as a gray level (PNG only)
//   - rgb8, rgb16: copied or scaled; opaque
//   - gray-alpha8: gray replicated, second channel alpha (PNG only)
//   - rgba8, rgba16: copied or scaled
//   - cmyk8: R = 255*(1-C)*(1-K), G = 255*(1-M)*(1-K), B = 255*(1-Y)*(1-K)
//
// # Errors
//
// Three failure kinds are kept apart:
//   - *HandlerError: the codec could not decode or encode the bytes
//   - ErrInvalidImage: the bytes decode but are unsupported (animation,
//     multi-page, dangling palette index)
//   - ErrUnknownFormat: no handler matches
//
// Encoding is always full RGBA and is lossless with respect to the canonical
// buffer for PNG, BMP (opaque images) and TIFF. It is not bit-identical to the
// original file.
package codec
