// Package stego hides encrypted payloads in the two least-significant bits of every color channel
// of an 8-bit, 3-channel raster.
//
// Embedding runs message -> AES-256-CBC envelope (PBKDF2 key, fresh salt and IV) -> compression ->
// '0'/'1' bit sequence terminated by Sentinel -> pixel channels, row-major, channel 0 to 2.
// Extraction reverses each step. The envelope carries no MAC, so a wrong key is detected through
// padding, decompression or text validation failures rather than authentication.
//
// The scheme assumes the carrier survives pixel-for-pixel: save the result with a lossless format.
package stego
