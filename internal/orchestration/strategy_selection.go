package orchestration

import "github.com/agbru/agecalc/internal/batch"

// StrategyAll selects every registered strategy.
const StrategyAll = "all"

// GetRunnersToRun determines which strategies should be executed. "all"
// returns every registered runner in alphabetical order for reproducible
// output; an unknown name returns nil.
func GetRunnersToRun(strategy string, registry *batch.Registry) []batch.Runner {
	if strategy == StrategyAll {
		names := registry.List()
		runners := make([]batch.Runner, 0, len(names))
		for _, name := range names {
			runners = append(runners, registry.MustGet(name))
		}
		return runners
	}
	if r, err := registry.Get(strategy); err == nil {
		return []batch.Runner{r}
	}
	return nil
}
