package translate

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// programIDKey seeds the HighwayHash used for program fingerprints. It is
// fixed so the same source always maps to the same log key.
var programIDKey = []byte("LucidNoemaProofLogFingerprint032")

// ProgramID fingerprints source text for proof-log lookup. The fingerprint
// is a fast 64-bit hash, not a tamper check; the proof's SHA-256 hashes
// carry the integrity guarantee.
func ProgramID(source string) string {
	hash, err := highwayhash.New64(programIDKey)
	if err != nil {
		panic(fmt.Errorf("failed to initialize program fingerprint: %w", err))
	}
	hash.Write([]byte(source))
	return fmt.Sprintf("%016x", hash.Sum64())
}

// LogEntry is one recorded translation: the program fingerprint plus the
// proof the translation produced.
type LogEntry struct {
	ProgramID string
	Proof     *Proof
}

// ProofLog accumulates the proofs a translator has produced, keyed by
// program fingerprint. A log belongs to one translator and is not shared
// across goroutines.
type ProofLog struct {
	disabled bool
	entries  []LogEntry
}

func NewProofLog() *ProofLog {
	return &ProofLog{}
}

// Record appends a proof under the given fingerprint. Recording on a
// disabled log is a no-op.
func (l *ProofLog) Record(programID string, proof *Proof) {
	if l.disabled {
		return
	}
	l.entries = append(l.entries, LogEntry{ProgramID: programID, Proof: proof})
}

// Lookup returns every proof recorded for a fingerprint, oldest first.
func (l *ProofLog) Lookup(programID string) []*Proof {
	var proofs []*Proof
	for _, entry := range l.entries {
		if entry.ProgramID == programID {
			proofs = append(proofs, entry.Proof)
		}
	}
	return proofs
}

// Entries returns a copy of the full log, oldest first.
func (l *ProofLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Disable stops the log from recording. Already-recorded entries stay
// readable.
func (l *ProofLog) Disable() {
	l.disabled = true
}

func (l *ProofLog) Len() int {
	return len(l.entries)
}
