// Package seed generates a synthetic workforce event corpus and posts it
// to a running service in reload batches.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// trajectory shapes how a skill's adoption probability changes per year.
type trajectory int

const (
	trajExplosive trajectory = iota
	trajGrowing
	trajStable
	trajDeclining
	trajDying
)

// archetype is one synthetic skill with a category and adoption curve.
type archetype struct {
	name     string
	category string
	traj     trajectory
	base     float64 // adoption probability at the first year
}

// The synthetic taxonomy mixes modern and legacy skills across departments
// so every trend band and alert path has material to work with.
var taxonomy = []archetype{
	{"kubernetes", "engineering", trajExplosive, 0.05},
	{"rust", "engineering", trajExplosive, 0.03},
	{"go", "engineering", trajGrowing, 0.20},
	{"terraform", "engineering", trajGrowing, 0.15},
	{"java", "engineering", trajStable, 0.40},
	{"jenkins", "engineering", trajDeclining, 0.30},
	{"svn", "engineering", trajDying, 0.20},
	{"machine learning", "data", trajExplosive, 0.06},
	{"python", "data", trajGrowing, 0.30},
	{"sql", "data", trajStable, 0.50},
	{"sas", "data", trajDeclining, 0.25},
	{"incident response", "operations", trajGrowing, 0.15},
	{"itil", "operations", trajStable, 0.30},
	{"mainframe operations", "operations", trajDying, 0.15},
	{"figma", "design", trajGrowing, 0.20},
	{"photoshop", "design", trajStable, 0.35},
	{"flash", "design", trajDying, 0.10},
	{"threat modeling", "security", trajGrowing, 0.10},
	{"cobol", "engineering", trajDying, 0.12},
}

var departments = []string{"engineering", "data", "operations", "design", "security"}

// adoption returns the probability that a person in the skill's department
// touches the skill in the given year of the history.
func (a archetype) adoption(yearIndex, totalYears int) float64 {
	progress := float64(yearIndex) / math.Max(1, float64(totalYears-1))
	switch a.traj {
	case trajExplosive:
		return a.base * math.Pow(6, progress)
	case trajGrowing:
		return a.base * (1 + 1.5*progress)
	case trajStable:
		return a.base
	case trajDeclining:
		return a.base * (1 - 0.5*progress)
	case trajDying:
		return a.base * math.Pow(0.15, progress)
	default:
		return a.base
	}
}

// eventID derives a stable UUID from the event's identity so a fixed seed
// always reproduces the same corpus, duplicates included.
func eventID(personID, skill string, year int, kind string) string {
	key := fmt.Sprintf("%s|%s|%d|%s", personID, skill, year, kind)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// Generate produces the full synthetic event history. The same Config
// always yields the same slice.
func Generate(cfg *Config) []Event {
	rng := rand.New(rand.NewSource(cfg.Seed))
	years := cfg.LastYear - cfg.FirstYear + 1

	var events []Event
	for p := 0; p < cfg.People; p++ {
		personID := fmt.Sprintf("emp-%04d", p)
		dept := departments[p%len(departments)]

		for yi := 0; yi < years; yi++ {
			year := cfg.FirstYear + yi
			for _, a := range taxonomy {
				prob := a.adoption(yi, years)
				// Cross-department exposure at a fraction of the in-department rate.
				if a.category != dept {
					prob *= 0.15
				}
				if rng.Float64() >= prob {
					continue
				}

				kind := pickType(rng, a.traj, yi, years)
				events = append(events, Event{
					EventID:   eventID(personID, a.name, year, kind),
					PersonID:  personID,
					SkillName: a.name,
					Category:  a.category,
					EventDate: randomDate(rng, year),
					EventType: kind,
				})
			}
		}
	}
	return events
}

// pickType weights event kinds: mostly usage, some acquisition and
// certification, and expiry concentrated on dying skills late in history.
func pickType(rng *rand.Rand, traj trajectory, yearIndex, totalYears int) string {
	late := float64(yearIndex) / math.Max(1, float64(totalYears-1))
	if traj == trajDying && late > 0.5 && rng.Float64() < 0.3 {
		return "expired"
	}
	switch r := rng.Float64(); {
	case r < 0.60:
		return "used"
	case r < 0.85:
		return "acquired"
	default:
		return "certified"
	}
}

func randomDate(rng *rand.Rand, year int) string {
	day := rng.Intn(364) + 1
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, day).Format("2006-01-02")
}
