package seed

import "time"

// Config holds configuration for the corpus seeder.
type Config struct {
	BaseURL   string        // Base URL of the service
	People    int           // Number of synthetic employees
	FirstYear int           // First year of generated history
	LastYear  int           // Last year of generated history
	Seed      int64         // PRNG seed; a fixed seed reproduces the corpus
	BatchSize int           // Events per reload request
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// Event mirrors the reload batch item schema.
type Event struct {
	EventID   string `json:"event_id"`
	PersonID  string `json:"person_id"`
	SkillName string `json:"skill_name"`
	Category  string `json:"category"`
	EventDate string `json:"event_date"`
	EventType string `json:"event_type"`
}

// ReloadAck mirrors the reload response.
type ReloadAck struct {
	Status      string `json:"status"`
	Ingested    int    `json:"ingested"`
	Duplicates  int    `json:"duplicates"`
	TotalEvents int    `json:"total_events"`
	Skills      int    `json:"skills"`
	Employees   int    `json:"employees"`
}

// Stats holds seeding statistics.
type Stats struct {
	EventsGenerated int
	EventsIngested  int
	EventsDuplicate int
	BatchesPosted   int
	BatchesFailed   int
	StartTime       time.Time
	Duration        time.Duration
}
