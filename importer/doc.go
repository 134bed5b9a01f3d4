// SPDX-License-Identifier: EPL-2.0

// Package importer brings external audio into the recorder's own
// container so it can be played back like a recording.
//
// Supported inputs are WAV (PCM), AIFF (16-bit PCM), MP3 and Ogg
// Vorbis, selected by file extension through a decoder registry. The import pipeline is:
//
//	decode -> mix down to mono -> cubic resample to the capture rate
//	       -> quantize to unsigned 8-bit -> store pages
//
// Decoders yield normalized float32 samples in [-1, 1]; all rate and
// width conversion happens after decoding, so every format shares one
// pipeline.
package importer
