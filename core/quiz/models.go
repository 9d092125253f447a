package quiz

import (
	"io/fs"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const definitionPath = "assets/quiz/chronotype.yaml"

// Animals in tally order; on a tie the later animal wins.
var Animals = []string{"lion", "bear", "wolf", "dolphin"}

type (
	Option struct {
		Text   string `json:"text" yaml:"text"`
		Animal string `json:"-" yaml:"animal"`
	}

	Question struct {
		Question string   `json:"question" yaml:"question"`
		Options  []Option `json:"options" yaml:"options"`
	}

	Result struct {
		Chronotype    string `json:"chronotype" yaml:"chronotype"`
		Animal        string `json:"animal" yaml:"-"`
		BestStudyTime string `json:"best_study_time" yaml:"best_study_time"`
	}

	Definition struct {
		Questions []Question        `yaml:"questions"`
		Results   map[string]Result `yaml:"results"`
	}

	// Answers holds the chosen option index for each question, in order.
	Answers struct {
		Answers []int `json:"answers" validate:"required,dive,min=0"`
	}
)

// LoadDefinition reads the quiz questions and results from fsys.
func LoadDefinition(fsys fs.FS) (Definition, error) {
	data, err := fs.ReadFile(fsys, definitionPath)
	if err != nil {
		return Definition{}, errors.Wrap(err, "reading quiz definition")
	}
	var def Definition
	if err = yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, errors.Wrap(err, "decoding quiz definition")
	}
	return def, def.check()
}

func (def Definition) check() error {
	known := make(map[string]bool, len(Animals))
	for _, a := range Animals {
		known[a] = true
		if _, ok := def.Results[a]; !ok {
			return errors.Errorf("quiz definition: no result for %q", a)
		}
	}
	if len(def.Questions) == 0 {
		return errors.New("quiz definition: no questions")
	}
	for i, q := range def.Questions {
		if len(q.Options) == 0 {
			return errors.Errorf("quiz definition: question %d has no options", i+1)
		}
		for _, o := range q.Options {
			if !known[o.Animal] {
				return errors.Errorf("quiz definition: question %d: unknown animal %q", i+1, o.Animal)
			}
		}
	}
	return nil
}

// Score tallies the answers and returns the winning chronotype.
// Answers must already be validated against the questions.
func (def Definition) Score(answers []int) Result {
	counts := make(map[string]int, len(Animals))
	for i, a := range answers {
		counts[def.Questions[i].Options[a].Animal]++
	}

	best := Animals[0]
	for _, animal := range Animals[1:] {
		if counts[animal] >= counts[best] {
			best = animal
		}
	}
	res := def.Results[best]
	res.Animal = best
	return res
}
