package engine

import "fmt"

// DefaultOptionCount is the multiple-choice option set size used when
// the caller does not specify one.
const DefaultOptionCount = 4

// GenerateOptions builds a shuffled multiple-choice option set: the
// correct answer plus up to count-1 distractors sampled from the pool.
// Pool entries that normalized-equal the correct answer are filtered
// out. When the pool cannot supply enough distractors the set is padded
// with placeholder labels so the length is always count.
func (s *Service) GenerateOptions(correct string, pool []string, count int) []string {
	if count <= 0 {
		count = DefaultOptionCount
	}

	normCorrect := normalize(correct)
	distractors := make([]string, 0, len(pool))
	for _, answer := range pool {
		if normalize(answer) != normCorrect {
			distractors = append(distractors, answer)
		}
	}

	s.shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > count-1 {
		distractors = distractors[:count-1]
	}

	options := make([]string, 0, count)
	options = append(options, correct)
	options = append(options, distractors...)
	for len(options) < count {
		options = append(options, fmt.Sprintf("Option %d", len(options)))
	}

	s.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
