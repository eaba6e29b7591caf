package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/onboarding-engine/internal/types"
	"github.com/jonathan/onboarding-engine/schemas"
)

// SnapshotError reports why a cached snapshot was rejected. Rejected
// snapshots are treated as absent, not as faults; the error exists for
// logging and tests.
type SnapshotError struct {
	Reason string
	Cause  error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid session snapshot: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid session snapshot: %s", e.Reason)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// DecodeSnapshot validates raw cached bytes against the session snapshot
// schema and decodes them. Any shape violation yields a *SnapshotError.
func DecodeSnapshot(raw []byte) (*types.OnboardingSession, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemas.SessionSnapshot)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, &SnapshotError{Reason: "not valid JSON", Cause: err}
	}
	if !result.Valid() {
		var descs []string
		for _, desc := range result.Errors() {
			descs = append(descs, desc.String())
		}
		return nil, &SnapshotError{Reason: strings.Join(descs, "; ")}
	}

	var sess types.OnboardingSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, &SnapshotError{Reason: "failed to decode", Cause: err}
	}
	return &sess, nil
}

// EncodeSnapshot serializes a session for the local cache.
func EncodeSnapshot(sess *types.OnboardingSession) ([]byte, error) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	return raw, nil
}
