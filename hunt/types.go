// =======================
// hunt/types.go
// =======================

package hunt

import "time"

const (
	DefaultCharset       = "0123456789abcdefghijklmnopqrstuvwxyz"
	DefaultPattern       = "'='"
	DefaultLength        = 10
	DefaultLimit         = 100
	DefaultProgressEvery = 10_000_000
	DefaultChunkSize     = 1 << 16
	MaxLength            = 4096
)

// Match is one candidate whose digest contains the pattern.
type Match struct {
	Iteration uint64    `json:"iteration"`
	Candidate string    `json:"candidate"`
	Digest    string    `json:"digest"`
	Algorithm Algorithm `json:"algorithm"`
}

// Progress is emitted once every ProgressEvery iterations.
// Marker starts at 1.
type Progress struct {
	Marker     uint64 `json:"marker"`
	Iterations uint64 `json:"iterations"`
}

// Summary describes a finished (or cancelled) run.
type Summary struct {
	Iterations uint64        `json:"iterations"`
	Matches    uint64        `json:"matches"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// Rate returns candidates per second.
func (s Summary) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Iterations) / s.Elapsed.Seconds()
}

// Sink receives search events. Calls are never concurrent.
type Sink interface {
	Match(Match)
	Progress(Progress)
}

// ChunkObserver is an optional Sink extension notified as iterations
// complete, in units of at most ChunkSize. total is the running count.
type ChunkObserver interface {
	Chunk(total uint64)
}
