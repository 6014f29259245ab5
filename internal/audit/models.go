package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Action names.
const (
	ActionFamilyLookup = "family_lookup"
)

// Source says where a lookup result came from.
const (
	SourceBackend = "backend"
	SourceCache   = "cache"
)

// Event records one family lookup. The queried IIN is stored only as a hash
// so the audit trail carries no raw national ids.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Action        string    `json:"action"`
	SubjectIDHash string    `json:"subject_id_hash"`
	RequestID     string    `json:"request_id,omitempty"`
	ActorID       string    `json:"actor_id,omitempty"`
	Outcome       string    `json:"outcome"`
	Source        string    `json:"source,omitempty"`
	MemberCount   int       `json:"member_count,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
}

// HashSubject returns the hex SHA-256 of a national id.
func HashSubject(iin string) string {
	sum := sha256.Sum256([]byte(iin))
	return hex.EncodeToString(sum[:])
}

// Normalize fills the id and timestamp when missing.
func (e Event) Normalize(now time.Time) Event {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	return e
}
