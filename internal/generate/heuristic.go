package generate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/quizforge/quizforge/internal/quiz"
)

const (
	minSentenceLen  = 40 // shorter segments cannot carry a question
	keywordPoolSize = 40
	rawPrefixLen    = 200
	placeholderText = "Sample context for question generation."
)

var (
	blankWordRe = regexp.MustCompile(`[A-Za-z]{4,}`) // words eligible for blanking
	keywordRe   = regexp.MustCompile(`[a-z]{5,}`)    // keyword tokens, lowercased source
)

var difficultyOrder = []string{quiz.DifficultyEasy, quiz.DifficultyMedium, quiz.DifficultyHard}

// Heuristic derives a question set from source text without any external
// dependency. It never fails: degenerate input falls back to a placeholder
// sentence, though the result may hold fewer questions than requested when
// the source lacks material. Pure apart from fresh question IDs.
func Heuristic(sourceText string, settings quiz.Settings) []quiz.Question {
	n := settings.Count()
	dist := settings.EffectiveTypes()
	sentences := sentenceSegments(sourceText)
	keywords := topKeywords(sourceText, keywordPoolSize)

	var questions []quiz.Question
	// difficulty cycles over the running total, interleaving evenly across types
	difficulty := func() string { return difficultyOrder[len(questions)%3] }

	// Fill in the blank: mask the middle qualifying word of a sentence.
	for i := 0; i < dist[quiz.TypeFillBlank] && i < len(sentences); i++ {
		s := sentences[i]
		words := blankWordRe.FindAllString(s, -1)
		if len(words) == 0 {
			continue
		}
		blank := words[len(words)/2]
		questions = append(questions, quiz.Question{
			ID:          uuid.NewString(),
			Type:        quiz.TypeFillBlank,
			Difficulty:  difficulty(),
			Prompt:      strings.Replace(s, blank, "____", 1),
			Answer:      quiz.TextKey(blank),
			Explanation: fmt.Sprintf("The missing word is '%s'.", blank),
			Topic:       "Key term",
		})
	}

	// True/False: alternate by index parity between the sentence verbatim and
	// a negated form.
	for i := 0; i < dist[quiz.TypeTrueFalse] && i < len(sentences); i++ {
		s := sentences[i]
		truth := i%2 == 0
		prompt := s
		if !truth {
			if strings.Contains(s, " is ") {
				prompt = strings.Replace(s, " is ", " is not ", 1)
			} else {
				prompt = "Not true: " + s
			}
		}
		questions = append(questions, quiz.Question{
			ID:          uuid.NewString(),
			Type:        quiz.TypeTrueFalse,
			Difficulty:  difficulty(),
			Prompt:      prompt,
			Answer:      quiz.TruthKey(truth),
			Explanation: "Based on the provided source text.",
			Topic:       "Comprehension",
		})
	}

	// MCQ: one frequent keyword as the answer, a sliding window of keywords
	// as distractors.
	for i := 0; i < dist[quiz.TypeMCQ]; i++ {
		if len(keywords) == 0 {
			break
		}
		answer := keywords[i%len(keywords)]
		opts := optionSet(window(keywords, i, 5), []string{answer}, 4)
		ci := indexOf(opts, answer)
		if ci < 0 {
			opts[0] = answer
			ci = 0
		}
		questions = append(questions, quiz.Question{
			ID:          uuid.NewString(),
			Type:        quiz.TypeMCQ,
			Difficulty:  difficulty(),
			Prompt:      fmt.Sprintf("Which of the following best relates to the topic: '%s'?", answer),
			Options:     opts,
			Answer:      quiz.IndexKey(ci),
			Explanation: fmt.Sprintf("'%s' appears frequently in the source material.", answer),
			Topic:       titleCase(answer),
		})
	}

	// Multiple correct: two keywords picked via a wrapping window. Option
	// truncation may drop one of them; the correct set shrinks silently.
	for i := 0; i < dist[quiz.TypeMultipleCorrect]; i++ {
		if len(keywords) < 2 {
			break
		}
		answers := []string{keywords[i%len(keywords)], keywords[(i+1)%len(keywords)]}
		opts := optionSet(window(keywords, i, 6), answers, 5)
		var correct []int
		for _, a := range answers {
			if j := indexOf(opts, a); j >= 0 {
				correct = append(correct, j)
			}
		}
		questions = append(questions, quiz.Question{
			ID:          uuid.NewString(),
			Type:        quiz.TypeMultipleCorrect,
			Difficulty:  difficulty(),
			Prompt:      "Select all options that are key topics in the material.",
			Options:     opts,
			Answer:      quiz.IndicesKey(correct),
			Explanation: "Multiple core terms are present.",
			Topic:       titleCase(answers[0]) + ", " + titleCase(answers[1]),
		})
	}

	if len(questions) > n {
		questions = questions[:n]
	}
	return questions
}

// sentenceSegments splits on sentence terminators followed by whitespace and
// keeps segments long enough to carry a question. When nothing qualifies it
// falls back to a prefix of the raw source, or a placeholder for empty input.
func sentenceSegments(text string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			j := i + 1
			for j < len(text) && isSpace(text[j]) {
				j++
			}
			if j > i+1 {
				segs = append(segs, text[start:i+1])
				start = j
				i = j - 1
			}
		}
	}
	if start < len(text) {
		segs = append(segs, text[start:])
	}

	kept := segs[:0]
	for _, s := range segs {
		if s = strings.TrimSpace(s); len(s) > minSentenceLen {
			kept = append(kept, s)
		}
	}
	if len(kept) > 0 {
		return kept
	}
	if text == "" {
		return []string{placeholderText}
	}
	r := []rune(text)
	if len(r) > rawPrefixLen {
		r = r[:rawPrefixLen]
	}
	return []string{string(r)}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// topKeywords lower-cases the source, counts alphabetic tokens of length >= 5
// and returns the k most frequent, ties broken by first appearance.
func topKeywords(text string, k int) []string {
	tokens := keywordRe.FindAllString(strings.ToLower(text), -1)
	counts := make(map[string]int, len(tokens))
	var order []string
	for _, t := range tokens {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > k {
		order = order[:k]
	}
	return order
}

// window returns keywords[lo:lo+size] with both bounds clamped.
func window(keywords []string, lo, size int) []string {
	if lo > len(keywords) {
		lo = len(keywords)
	}
	hi := lo + size
	if hi > len(keywords) {
		hi = len(keywords)
	}
	return keywords[lo:hi]
}

// optionSet builds the option list in first-seen order: the distractor
// window first, then any designated answers not already present, truncated
// to limit. Truncation can drop a late-appended answer.
func optionSet(distractors, answers []string, limit int) []string {
	opts := make([]string, 0, len(distractors)+len(answers))
	seen := make(map[string]struct{}, cap(opts))
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		opts = append(opts, s)
	}
	for _, d := range distractors {
		add(d)
	}
	for _, a := range answers {
		add(a)
	}
	if len(opts) > limit {
		opts = opts[:limit]
	}
	return opts
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
