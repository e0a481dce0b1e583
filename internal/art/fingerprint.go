package art

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// CanonicalJSON returns a canonical JSON representation of the value.
// encoding/json emits struct fields in declaration order and sorts map
// keys, so the output is stable for identical inputs.
func CanonicalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	return data, nil
}

// Fingerprint computes the blake3 hash of the canonical JSON form.
// Two plans produced from identical inputs carry identical fingerprints,
// which makes the determinism guarantee checkable across runs.
func Fingerprint(v any) (string, error) {
	canonical, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash plan: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
