/*
Package tex implements read/write of Wallpaper Engine TEX textures.

A TEX file carries a small texture header followed by an image container
("TEXB0001".."TEXB0004"). The container holds one or more images, each a
pyramid of mipmaps (largest first). Mipmap payloads are raw pixel data,
DXT blocks or an embedded encoded file (PNG, JPEG, MP4, ...) and may be
LZ4 block compressed.

Every tag (TEXV, TEXI, TEXB, TEXS) is framed as an int32 little-endian
length followed by at most 16 bytes. Wallpaper Engine itself stores these
tags as 8 byte NUL terminated strings, so files written by it are not
readable by this package and files written here are not readable by it.

The container codec validates every length and count read from the
stream against Limits before allocating, and fails fast on malformed
input. Decompression and pixel decoding are separate steps: ReadContainer
returns payloads exactly as stored, Mipmap.Decompress and DecodeMipmap
turn them into pixels.
*/
package tex
