package quiz

// DefaultNumQuestions applies when a request does not ask for a specific
// question count.
const DefaultNumQuestions = 10

// Settings is the generation configuration. Distributions are per-type caps,
// not hard partitions; the generated list is truncated to Count() entries.
type Settings struct {
	NumQuestions           int            `json:"num_questions"`
	TypeDistribution       map[string]int `json:"type_distribution,omitempty"`
	DifficultyDistribution map[string]int `json:"difficulty_distribution,omitempty"`
}

// Count returns the effective target question count.
func (s Settings) Count() int {
	if s.NumQuestions > 0 {
		return s.NumQuestions
	}
	return DefaultNumQuestions
}

// EffectiveTypes returns the requested per-type counts, deriving the default
// thirds/sixths split (remainder to fill_blank) when none were requested.
func (s Settings) EffectiveTypes() map[string]int {
	if len(s.TypeDistribution) > 0 {
		return s.TypeDistribution
	}
	n := s.Count()
	return map[string]int{
		TypeMCQ:             max(1, n/3),
		TypeTrueFalse:       n / 3,
		TypeMultipleCorrect: n / 6,
		TypeFillBlank:       n - n/3 - n/3 - n/6,
	}
}

// EffectiveDifficulties returns the requested per-difficulty counts, deriving
// the default halves/thirds split (remainder to hard) when none were
// requested.
func (s Settings) EffectiveDifficulties() map[string]int {
	if len(s.DifficultyDistribution) > 0 {
		return s.DifficultyDistribution
	}
	n := s.Count()
	return map[string]int{
		DifficultyEasy:   n / 2,
		DifficultyMedium: n / 3,
		DifficultyHard:   n - n/2 - n/3,
	}
}
