// Package hunt searches for random strings whose cryptographic digest
// contains a given substring.
//
// Each iteration draws a fixed-length candidate from a charset, hashes it
// with the selected algorithm and tests the digest for the pattern:
//
//   - Generator: caller-owned PCG source, never global random state.
//   - Digester: buffers sized from the algorithm's declared digest size.
//   - Matcher: hex-text matching by default, raw-byte matching on request.
//   - Searcher: runs exactly N iterations, never stops on a match, and
//     reports a progress marker every ProgressEvery iterations.
//
// Errors:
//
//   - ErrInvalidCharset, ErrInvalidLength, ErrInvalidWorkers: bad options.
//   - ErrUnknownAlgorithm, ErrUnknownMode: unsupported names.
//   - ErrEmptyPattern: nothing to search for.
package hunt
