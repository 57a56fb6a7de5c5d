package temperature

import (
	"fmt"
	"math"

	"feedguard/internal/optimizer/calc"
	"feedguard/internal/types"
)

// buildRecommendations evaluates the advisory rules in a fixed order so that
// identical requests always produce the same recommendation list. Maintenance
// concerns are surfaced before process changes.
func buildRecommendations(req types.TemperatureRequest, humidity, adjustment, energy, energyRate float64) []types.Recommendation {
	recs := make([]types.Recommendation, 0, 4)

	if req.EquipmentStatus == types.EquipmentPoor {
		recs = append(recs, types.Recommendation{
			Title:    "Service treatment equipment",
			Impact:   types.ImpactMedium,
			Category: "Maintenance",
			Description: "Equipment in poor condition limits safe temperature " +
				"adjustments to ±5°C and degrades treatment consistency. " +
				"Schedule maintenance before the next production cycle.",
		})
	}

	if math.Abs(adjustment) >= 10 {
		recs = append(recs, types.Recommendation{
			Title:  "Stage the temperature adjustment",
			Impact: types.ImpactHigh,
			Description: fmt.Sprintf("A %.1f°C adjustment is large enough to "+
				"stress the batch. Apply it in two stages with a stabilization "+
				"hold between them.", math.Abs(adjustment)),
			Category: "Process",
		})
	}

	if req.StorageDuration > 90 {
		savedEnergy := calc.Round2(energy * 0.15)
		recs = append(recs, types.Recommendation{
			Title:  "Shorten the treatment cycle",
			Impact: types.ImpactMedium,
			Description: "Treatment effectiveness plateaus after 90 minutes. " +
				"Reducing the cycle toward 90 minutes preserves most of the " +
				"microbial reduction while cutting energy use.",
			Category:         "Efficiency",
			PotentialSavings: fmt.Sprintf("~%.2f INR per batch", savedEnergy*energyRate),
		})
	}

	if humidity >= 70 {
		recs = append(recs, types.Recommendation{
			Title:  "Control ambient humidity",
			Impact: types.ImpactMedium,
			Description: fmt.Sprintf("Ambient humidity of %.0f%% raises "+
				"condensation and recontamination risk after treatment. Improve "+
				"ventilation or dehumidify the treatment area.", humidity),
			Category: "Quality",
		})
	}

	return recs
}
