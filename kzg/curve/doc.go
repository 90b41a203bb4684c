// Package curve wraps the BLS12-381 primitives of circl with the little-endian scalar encoding
// and the compressed point encodings used by blob commitments.
package curve
