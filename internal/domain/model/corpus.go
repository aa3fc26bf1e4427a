package model

import "sort"

// Corpus is the aggregate view the engines are rebuilt from. It is derived
// from the full event history on every reload; nothing is updated in place.
type Corpus struct {
	Skills    map[string]*Skill
	Employees map[string]*Employee

	// CoOccurrence counts employees holding both skills of an unordered pair.
	// Keyed by the lexically smaller name first.
	CoOccurrence map[[2]string]float64

	Years []int // distinct observed years, ascending
}

// BuildCorpus folds the full event history into the aggregate view.
// Acquired/certified/used events add the skill to the holder's set and count
// toward yearly popularity; expired events remove it from the holder set.
// Events are processed in date order so expiry semantics are stable.
func BuildCorpus(events []SkillEvent) *Corpus {
	ordered := make([]SkillEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	c := &Corpus{
		Skills:       make(map[string]*Skill),
		Employees:    make(map[string]*Employee),
		CoOccurrence: make(map[[2]string]float64),
	}

	categoryVotes := make(map[string]map[string]int)
	yearSet := make(map[int]struct{})

	for _, ev := range ordered {
		name := Normalize(ev.SkillName)
		if name == "" || ev.PersonID == "" {
			continue
		}

		sk, ok := c.Skills[name]
		if !ok {
			sk = &Skill{Name: name, YearlyCounts: make(map[int]float64)}
			c.Skills[name] = sk
			categoryVotes[name] = make(map[string]int)
		}

		emp, ok := c.Employees[ev.PersonID]
		if !ok {
			emp = &Employee{PersonID: ev.PersonID, Skills: make(map[string]struct{})}
			c.Employees[ev.PersonID] = emp
		}

		if ev.Type == EventExpired {
			delete(emp.Skills, name)
			continue
		}

		year := ev.Date.Year()
		sk.YearlyCounts[year]++
		yearSet[year] = struct{}{}
		if ev.Category != "" {
			categoryVotes[name][ev.Category]++
		}
		emp.Skills[name] = struct{}{}
	}

	// Resolve dominant categories deterministically (count desc, name asc).
	for name, votes := range categoryVotes {
		best, bestCount := "", -1
		for cat, n := range votes {
			if n > bestCount || (n == bestCount && cat < best) {
				best, bestCount = cat, n
			}
		}
		c.Skills[name].Category = best
	}

	// Holder counts and pairwise co-occurrence from final holder sets.
	for _, emp := range c.Employees {
		held := make([]string, 0, len(emp.Skills))
		for s := range emp.Skills {
			held = append(held, s)
		}
		sort.Strings(held)
		for i, a := range held {
			c.Skills[a].Holders++
			for _, b := range held[i+1:] {
				c.CoOccurrence[[2]string{a, b}]++
			}
		}
	}

	c.Years = make([]int, 0, len(yearSet))
	for y := range yearSet {
		c.Years = append(c.Years, y)
	}
	sort.Ints(c.Years)

	return c
}

// SkillNames returns all canonical skill names in lexical order.
func (c *Corpus) SkillNames() []string {
	names := make([]string, 0, len(c.Skills))
	for n := range c.Skills {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SkillsInYear returns the set of skills with any popularity in year.
func (c *Corpus) SkillsInYear(year int) map[string]struct{} {
	out := make(map[string]struct{})
	for name, sk := range c.Skills {
		if sk.YearlyCounts[year] > 0 {
			out[name] = struct{}{}
		}
	}
	return out
}

// Popularity returns the total popularity of a skill across all years.
func (s *Skill) Popularity() float64 {
	var total float64
	for _, v := range s.YearlyCounts {
		total += v
	}
	return total
}
