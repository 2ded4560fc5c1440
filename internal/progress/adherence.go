package progress

import (
	"fmt"
	"math"

	"github.com/2beens/fitcoach/internal/nutrition"
	"github.com/2beens/fitcoach/internal/users"
)

type MacroAdherence struct {
	Logged  float64 `json:"logged"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
	Delta   string  `json:"delta"`
}

type AdherenceDay struct {
	Date     string         `json:"date"`
	Calories MacroAdherence `json:"calories"`
	Protein  MacroAdherence `json:"protein"`
	Carbs    MacroAdherence `json:"carbs"`
	Fat      MacroAdherence `json:"fat"`
}

// macroAdherence lines one logged macro up against its target. The delta
// carries an explicit sign, "+132" reads as 132 over target.
func macroAdherence(logged, target float64) MacroAdherence {
	adherence := MacroAdherence{
		Logged: logged,
		Target: target,
		Delta:  fmt.Sprintf("%+.0f", logged-target),
	}
	if target > 0 {
		adherence.Percent = math.Round(logged / target * 100)
	}
	return adherence
}

func adherenceDay(date string, totals nutrition.DayTotals, targets users.MacroTargets) AdherenceDay {
	return AdherenceDay{
		Date:     date,
		Calories: macroAdherence(totals.Calories, float64(targets.Calories)),
		Protein:  macroAdherence(totals.Protein, float64(targets.Protein)),
		Carbs:    macroAdherence(totals.Carbs, float64(targets.Carbs)),
		Fat:      macroAdherence(totals.Fat, float64(targets.Fat)),
	}
}
