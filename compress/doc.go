// Package compress provides the compression codecs applied to tsframe
// interchange payloads: flat-file bodies and the binary series records kept in
// the store.
//
// Payloads are compressed whole, after encoding. Flat-file bodies are
// delimiter-separated text with high redundancy across rows; store records are
// length-prefixed float64 vectors. Both compress well with general-purpose
// algorithms.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): bypass, for data that is already compact
//     or when CPU matters more than size.
//   - Zstd (format.CompressionZstd): best ratio, moderate speed. The default
//     for the store. Builds with cgo use valyala/gozstd; pure-Go builds use
//     klauspost/compress/zstd.
//   - S2 (format.CompressionS2): balanced speed and ratio, good for ingestion
//     paths.
//   - LZ4 (format.CompressionLZ4): fastest decompression, moderate ratio, good
//     for read-heavy workloads.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// # Thread Safety
//
// All codecs are stateless values safe for concurrent use; the Zstd and LZ4
// implementations pool their encoder state internally.
package compress
