// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// EventType enumerates the closed set of skill event kinds.
type EventType string

// Recognized event types.
const (
	EventAcquired  EventType = "acquired"
	EventCertified EventType = "certified"
	EventUsed      EventType = "used"
	EventExpired   EventType = "expired"
)

// Valid reports whether t is one of the recognized event types.
func (t EventType) Valid() bool {
	switch t {
	case EventAcquired, EventCertified, EventUsed, EventExpired:
		return true
	}
	return false
}

// SkillEvent represents a canonical employee/skill event record produced by
// the external ingestion layer. Immutable once ingested.
type SkillEvent struct {
	EventID   string    // unique id for idempotency
	PersonID  string    // employee identifier
	SkillName string    // raw skill name; canonicalized via Normalize
	Category  string    // skill category, e.g. "engineering"
	Date      time.Time // when the event occurred
	Type      EventType // acquired, certified, used, expired
}

// Skill is the canonical per-skill aggregate derived from the event corpus.
type Skill struct {
	Name         string          // canonical key (see Normalize)
	Category     string          // dominant category across events
	YearlyCounts map[int]float64 // year -> popularity (event count)
	Holders      int             // distinct employees holding the skill
}

// Employee maps a person to the canonical skills they hold.
type Employee struct {
	PersonID string
	Skills   map[string]struct{}
}

// HasSkill reports whether the employee holds the canonical skill name.
func (e Employee) HasSkill(name string) bool {
	_, ok := e.Skills[name]
	return ok
}

// Normalize produces the canonical skill key: lowercase, trimmed, with
// interior whitespace collapsed to single spaces.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
