// Package cryptox seals stored records in a digest envelope so that a
// corrupted or hand-edited value is detected on read.
package cryptox

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/landlease/internal/common"
	"golang.org/x/crypto/blake2b"
)

// Envelope is the persisted form of a record.
type Envelope struct {
	Digest  string          `json:"digest"`
	Payload json.RawMessage `json:"payload"`
}

// Digest returns the hex encoded BLAKE2b-256 sum of payload.
func Digest(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Seal serializes v to JSON and wraps it together with its digest.
func Seal(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	return json.Marshal(Envelope{Digest: Digest(payload), Payload: payload})
}

// Open verifies the envelope digest and unmarshals the payload into v.
// A malformed envelope or digest mismatch yields common.ErrInvariantViolation.
func Open(data []byte, v any) error {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: malformed record envelope: %v", common.ErrInvariantViolation, err)
	}

	// json.RawMessage keeps the bytes exactly as written by Seal.
	payload := bytes.TrimSpace(env.Payload)
	if env.Digest != Digest(payload) {
		return fmt.Errorf("%w: record digest mismatch", common.ErrInvariantViolation)
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: decode record: %v", common.ErrInvariantViolation, err)
	}
	return nil
}
