package recommend

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// GoalTable maps a goal tag to the sport categories that serve it. Each
// matching category contributes a fixed increment to the goal sub-score.
type GoalTable map[string][]string

// DefaultGoalTable returns the built-in goal→category whitelist.
func DefaultGoalTable() GoalTable {
	return GoalTable{
		model.GoalBloodPressure: {"walking", "water_exercise", "yoga"},
		model.GoalWeight:        {"walking", "jogging", "light_strength"},
		model.GoalStrength:      {"light_strength", "strength"},
		model.GoalFlexibility:   {"yoga", "stretching"},
		model.GoalSocial:        {"group_class", "dance"},
	}
}

// LoadGoalTable reads a goal rule table from a YAML file. The file has a
// top-level "goal_match" key mapping goal tags to category lists. Missing
// goals fall back to the built-in defaults.
func LoadGoalTable(path string) (GoalTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "recommend: read goal table %s", path)
	}

	var wrapper struct {
		GoalMatch GoalTable `yaml:"goal_match"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "recommend: parse goal table")
	}

	table := DefaultGoalTable()
	for goal, categories := range wrapper.GoalMatch {
		table[goal] = categories
	}
	return table, nil
}

func (t GoalTable) matches(goal, category string) bool {
	for _, c := range t[goal] {
		if c == category {
			return true
		}
	}
	return false
}
