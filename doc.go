/*
Package gvr implements GameCube/Wii GVR texture read/write.

A GVR file starts with an optional GCIX or GBIX chunk carrying a global index,
followed by a GVRT chunk describing the data format, dimensions and flags.
Pixel data is stored in GX tile order (big-endian), optionally preceded by an
internal color palette for the indexed formats and followed by a mipmap chain.

The package focuses on practical workflows: build an Encoder through one of
the four header/palette constructors, optionally add mipmaps or a global
index, encode an image file, and decode the largest level of a GVR file back
into an NRGBA image.
*/
package gvr
