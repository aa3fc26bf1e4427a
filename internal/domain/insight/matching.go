package insight

import (
	"math"
	"sort"

	"github.com/42Prague/skillgenome/internal/domain/model"
	"github.com/42Prague/skillgenome/internal/domain/trend"
	"github.com/42Prague/skillgenome/internal/domain/types"
)

// Similarity returns co-occurrence proximity between two skills, normalized
// by holder counts (cosine over the employee incidence vectors).
func Similarity(c *model.Corpus, a, b string) float64 {
	if a == b {
		return 1
	}
	key := [2]string{a, b}
	if b < a {
		key = [2]string{b, a}
	}
	co := c.CoOccurrence[key]
	if co == 0 {
		return 0
	}
	ha := float64(c.Skills[a].Holders)
	hb := float64(c.Skills[b].Holders)
	if ha == 0 || hb == 0 {
		return 0
	}
	return co / math.Sqrt(ha*hb)
}

// SimilarSkills returns the top-k most similar skills to name, ordered by
// similarity descending with lexical tie-breaking.
func SimilarSkills(c *model.Corpus, name string, k int) []types.SimilarSkill {
	var out []types.SimilarSkill
	for _, other := range c.SkillNames() {
		if other == name {
			continue
		}
		if sim := Similarity(c, name, other); sim > 0 {
			out = append(out, types.SimilarSkill{Name: other, Similarity: sim})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Name < out[j].Name
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// MentorshipMatches pairs each skill whose mutation risk exceeds the
// threshold with the lowest-risk skill among its top-K most similar
// alternatives, and counts the employees on each side of the transition.
func (e *Engine) MentorshipMatches(c *model.Corpus, risks []types.MutationRisk) []types.MentorshipMatch {
	riskOf := make(map[string]float64, len(risks))
	for _, r := range risks {
		riskOf[r.Skill] = r.Risk
	}

	var out []types.MentorshipMatch
	for _, r := range risks {
		if r.Risk <= e.riskThreshold {
			continue
		}
		candidates := SimilarSkills(c, r.Skill, e.similarTopK)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0].Name
		for _, cand := range candidates[1:] {
			if riskOf[cand.Name] < riskOf[best] ||
				(riskOf[cand.Name] == riskOf[best] && cand.Name < best) {
				best = cand.Name
			}
		}
		if riskOf[best] >= r.Risk {
			continue // no safer alternative nearby
		}

		var mentees, mentors int
		for _, emp := range c.Employees {
			holdsAtRisk := emp.HasSkill(r.Skill)
			holdsAlt := emp.HasSkill(best)
			if holdsAtRisk && !holdsAlt {
				mentees++
			}
			if holdsAlt {
				mentors++
			}
		}

		out = append(out, types.MentorshipMatch{
			AtRiskSkill: r.Skill,
			Alternative: best,
			Risk:        r.Risk,
			Mentees:     mentees,
			Mentors:     mentors,
			Urgency:     urgency(r.Risk, mentees),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Risk != out[j].Risk {
			return out[i].Risk > out[j].Risk
		}
		return out[i].AtRiskSkill < out[j].AtRiskSkill
	})
	return out
}

func urgency(risk float64, affected int) string {
	switch {
	case risk > 0.8 && affected > 5:
		return "critical"
	case risk > 0.7 || affected > 10:
		return "high"
	default:
		return "medium"
	}
}

// RedundancyAlerts flags skills held by at most the configured number of
// employees. Criticality blends popularity and growth; alerts rank by
// criticality descending with lexical tie-breaking.
func (e *Engine) RedundancyAlerts(c *model.Corpus, trends map[string]trend.Analysis) []types.RedundancyAlert {
	var maxPop float64
	for _, sk := range c.Skills {
		maxPop = math.Max(maxPop, sk.Popularity())
	}

	var out []types.RedundancyAlert
	for _, name := range c.SkillNames() {
		sk := c.Skills[name]
		if sk.Holders == 0 || sk.Holders > e.redundancyThreshold {
			continue
		}

		normPop := 0.0
		if maxPop > 0 {
			normPop = sk.Popularity() / maxPop
		}
		// Growth maps to [0,1] with stable (0%/yr) at 0.5.
		normGrowth := clamp01(0.5 + growthOf(trends, name)/200)

		criticality := 0.6*normPop + 0.4*normGrowth
		level := "Warning"
		if criticality > e.criticalityCutoff {
			level = "Critical"
		}
		out = append(out, types.RedundancyAlert{
			Skill:       name,
			Holders:     sk.Holders,
			Criticality: criticality,
			RiskLevel:   level,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Criticality != out[j].Criticality {
			return out[i].Criticality > out[j].Criticality
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}
