// Package extract converts opaque email input artifacts into plain text.
//
// Extraction is polymorphic over a closed set of formats detected from the
// filename extension: plain text, PDF, Word documents, images (via OCR), and
// raw .eml messages. The package also decomposes .eml containers into their
// attachment parts, materializing each one in transient storage so it can be
// re-fed through the same extraction path as a directly uploaded file.
//
// Extraction is synchronous and side-effect-free aside from reading the input.
package extract
