// Package blob implements the binary container for compressed waveforms.
//
// A blob holds one readout event: the compressed waveforms of many
// channels, plus everything a reader needs to reconstruct them — the
// compression mode, the zero suppression parameters, and per-channel
// original lengths. The layout is a fixed 32-byte header, a fixed-size
// channel index, and a sample payload that is optionally compressed as
// bytes (Zstd, S2 or LZ4) on top of the waveform codec:
//
//	┌────────────┬───────────────────┬─────────────────────────┐
//	│ header 32B │ index 16B/channel │ payload (compressed)    │
//	└────────────┴───────────────────┴─────────────────────────┘
//
// Channels are identified by 64-bit IDs: either caller-assigned numbers or
// xxHash64 of a channel name via AddChannelName. The payload carries a
// CRC32 checksum verified on decode.
package blob
