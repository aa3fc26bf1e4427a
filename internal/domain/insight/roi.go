package insight

import (
	"fmt"
	"math"

	"github.com/42Prague/skillgenome/internal/domain/model"
	"github.com/42Prague/skillgenome/internal/domain/trend"
	"github.com/42Prague/skillgenome/internal/domain/types"
)

// Per-head value components of a reskilling move, scaled by the target
// skill's growth factor. Product defaults, configurable in spirit: the ROI
// outcome is deterministic in (employee_count, target growth rate).
const (
	avoidedHiringPerHead  = 8000.0
	riskMitigationPerHead = 3000.0
	productivityPerHead   = 5000.0
	retentionPerHead      = 2000.0
	alignmentPerHead      = 1500.0

	// growthFactor normalization: a 20%/yr (explosive-edge) target skill
	// yields factor 1.0; the factor is clamped to [0,2].
	growthFactorScale = 20.0
	growthFactorMax   = 2.0
)

// ROI recommendation tiers on roi_pct.
const (
	tierHighlyRecommended = "highly_recommended"
	tierRecommended       = "recommended"
	tierConsider          = "consider"
	tierNotRecommended    = "not_recommended"
)

// SimulateROI runs the deterministic reskilling what-if for moving
// employeeCount people from fromSkill to toSkill. Both skills must exist in
// the corpus; employeeCount must be positive.
func (e *Engine) SimulateROI(c *model.Corpus, trends map[string]trend.Analysis, fromSkill, toSkill string, employeeCount int) (types.ROISimulation, error) {
	from := model.Normalize(fromSkill)
	to := model.Normalize(toSkill)
	if _, ok := c.Skills[from]; !ok {
		return types.ROISimulation{}, fmt.Errorf("%w: %q", ErrUnknownSkill, fromSkill)
	}
	if _, ok := c.Skills[to]; !ok {
		return types.ROISimulation{}, fmt.Errorf("%w: %q", ErrUnknownSkill, toSkill)
	}
	if employeeCount <= 0 {
		return types.ROISimulation{}, fmt.Errorf("%w: employee_count must be positive", ErrInvalidParameter)
	}

	growth := growthOf(trends, to)
	factor := math.Max(0, math.Min(growthFactorMax, growth/growthFactorScale))
	count := float64(employeeCount)

	investment := count * e.trainingCostPerHead
	value := count*avoidedHiringPerHead*(1+factor) +
		count*riskMitigationPerHead*(1+factor/2) +
		count*productivityPerHead*(0.5+factor) +
		count*retentionPerHead +
		count*alignmentPerHead*factor

	roiPct := (value - investment) / investment * 100
	paybackMonths := investment / (value / 12)

	return types.ROISimulation{
		FromSkill:      from,
		ToSkill:        to,
		EmployeeCount:  employeeCount,
		Investment:     investment,
		Value:          value,
		ROIPercent:     roiPct,
		PaybackMonths:  paybackMonths,
		Recommendation: roiTier(roiPct),
	}, nil
}

func roiTier(roiPct float64) string {
	switch {
	case roiPct >= 150:
		return tierHighlyRecommended
	case roiPct >= 50:
		return tierRecommended
	case roiPct >= 0:
		return tierConsider
	default:
		return tierNotRecommended
	}
}
