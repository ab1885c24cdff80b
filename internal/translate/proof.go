package translate

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"lucid/internal/errors"
	"lucid/internal/knowledge"
)

// Proof is the tamper-evidence record attached to every translation. The
// chained proof hash binds the source text, the canonical document bytes,
// the translator version and the timestamp together, so changing any one of
// them invalidates the whole record.
type Proof struct {
	SourceHash        string `json:"source_hash"`
	TargetHash        string `json:"target_hash"`
	TranslatorVersion string `json:"translator_version"`
	Timestamp         string `json:"timestamp"`
	ProofHash         string `json:"proof_hash"`
}

// NewProof hashes the source text and the canonical form of the document
// and chains both into a proof hash.
func NewProof(source string, document *knowledge.Object, version string, now time.Time) (*Proof, error) {
	canonical, err := document.Canonical()
	if err != nil {
		return nil, err
	}
	proof := &Proof{
		SourceHash:        hashBytes([]byte(source)),
		TargetHash:        hashBytes(canonical),
		TranslatorVersion: version,
		Timestamp:         now.Format(time.RFC3339),
	}
	proof.ProofHash = chainHash(proof.SourceHash, proof.TargetHash, proof.TranslatorVersion, proof.Timestamp)
	return proof, nil
}

// Verify recomputes every hash from the supplied source text and document
// and compares them against the stored record. Verification fails closed:
// the first mismatch invalidates the proof.
func (p *Proof) Verify(source string, document *knowledge.Object) *errors.Diagnostic {
	if hashBytes([]byte(source)) != p.SourceHash {
		return errors.ProofMismatch(errors.ErrorSourceHashMismatch, "source hash")
	}
	return p.VerifyDocument(document)
}

// VerifyDocument checks the document-side hashes only. Reverse translation
// uses this form, where no original source text is available.
func (p *Proof) VerifyDocument(document *knowledge.Object) *errors.Diagnostic {
	canonical, err := document.Canonical()
	if err != nil {
		return errors.ProofMismatch(errors.ErrorTargetHashMismatch, "document hash")
	}
	if hashBytes(canonical) != p.TargetHash {
		return errors.ProofMismatch(errors.ErrorTargetHashMismatch, "document hash")
	}
	if chainHash(p.SourceHash, p.TargetHash, p.TranslatorVersion, p.Timestamp) != p.ProofHash {
		return errors.ProofMismatch(errors.ErrorProofIrreproducible, "proof hash")
	}
	return nil
}

// hashBytes returns the lowercase hex SHA-256 digest of data.
func hashBytes(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// chainHash derives the proof hash from the two content hashes plus the
// version and timestamp, concatenated in that fixed order.
func chainHash(sourceHash, targetHash, version, timestamp string) string {
	return hashBytes([]byte(sourceHash + targetHash + version + timestamp))
}
