// Package answer implements the rule-based question answering heuristic.
// The engine is a closed-form function over (question, document text): it
// performs no I/O, keeps no state between calls, and always returns the
// same answer for the same inputs.
package answer

import (
	"regexp"
	"sort"
	"strings"
)

// Fixed responses for inputs the rules cannot work with.
const (
	MsgEmptyDocument   = "The document is empty, so there is nothing to answer from."
	MsgEmptyQuestion   = "Please ask a question."
	MsgNoMatch         = "No relevant content was found in the document for that question."
	MsgNoNumbersFound  = "No numbers were found in the document."
	MsgNoEntitiesFound = "No people or entities were found in the document."
)

// Options are the engine tunables. Zero values fall back to the defaults
// documented on each field.
type Options struct {
	// TopicSentences is how many leading sentences answer a topic
	// question. Default 3.
	TopicSentences int
	// SummarySentences is how many sentences a summary keeps. Default 5.
	SummarySentences int
	// MaxMatches caps the sentences returned by keyword matching. Default 3.
	MaxMatches int
	// MaxNumbers caps the numeric tokens listed for count questions. Default 10.
	MaxNumbers int
	// MaxNames caps the proper-noun candidates listed for who questions. Default 10.
	MaxNames int
}

func (o Options) withDefaults() Options {
	if o.TopicSentences <= 0 {
		o.TopicSentences = 3
	}
	if o.SummarySentences <= 0 {
		o.SummarySentences = 5
	}
	if o.MaxMatches <= 0 {
		o.MaxMatches = 3
	}
	if o.MaxNumbers <= 0 {
		o.MaxNumbers = 10
	}
	if o.MaxNames <= 0 {
		o.MaxNames = 10
	}
	return o
}

var (
	numberPattern     = regexp.MustCompile(`\b\d+(?:\.\d+)?%?`)
	properNamePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)*\b`)
)

// stopWords are question tokens that carry no matching signal. Keyword
// extraction drops them along with anything of three characters or fewer.
var stopWords = map[string]struct{}{
	"about": {}, "after": {}, "before": {}, "being": {}, "could": {},
	"does": {}, "from": {}, "have": {}, "into": {}, "many": {},
	"more": {}, "most": {}, "much": {}, "over": {},
	"some": {}, "such": {}, "than": {}, "that": {}, "their": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "those": {}, "under": {}, "very": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "will": {},
	"with": {}, "would": {}, "your": {},
}

// rule is one (predicate, handler) pair. Rules are evaluated in priority
// order and the first matching rule produces the answer. Handlers are pure
// functions of the pre-segmented document.
type rule struct {
	name    string
	matches func(question string) bool
	answer  func(e *Engine, question string, doc docView) string
}

// docView is the segmented form of a document that rule handlers work on.
type docView struct {
	text      string
	sentences []string
}

// Engine answers natural-language questions against a document's extracted
// text using ordered pattern dispatch. Safe for concurrent use.
type Engine struct {
	opts  Options
	rules []rule
}

// New constructs an Engine with the given options.
func New(opts Options) *Engine {
	e := &Engine{opts: opts.withDefaults()}
	e.rules = []rule{
		{
			name:    "topic",
			matches: containsAny("what", "topic", "about", "subject", "main", "discuss"),
			answer:  (*Engine).answerTopic,
		},
		{
			name:    "summary",
			matches: containsAny("summarize", "summary", "overview", "gist"),
			answer:  (*Engine).answerSummary,
		},
		{
			name:    "count",
			matches: containsAny("how many", "count", "number of"),
			answer:  (*Engine).answerCount,
		},
		{
			name: "who",
			matches: func(q string) bool {
				return strings.HasPrefix(q, "who")
			},
			answer: (*Engine).answerWho,
		},
	}
	return e
}

// Answer maps a question and a document's text to an answer string. It
// never fails; unanswerable inputs yield one of the fixed messages.
func (e *Engine) Answer(question, context string) string {
	if strings.TrimSpace(context) == "" {
		return MsgEmptyDocument
	}
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return MsgEmptyQuestion
	}

	doc := docView{text: context, sentences: SplitSentences(context)}
	for _, r := range e.rules {
		if r.matches(q) {
			return r.answer(e, q, doc)
		}
	}
	return e.answerKeywords(q, doc)
}

// answerTopic returns the document's leading sentences verbatim.
func (e *Engine) answerTopic(_ string, doc docView) string {
	n := e.opts.TopicSentences
	if n > len(doc.sentences) {
		n = len(doc.sentences)
	}
	if n == 0 {
		return MsgNoMatch
	}
	return strings.Join(doc.sentences[:n], " ")
}

// answerSummary picks the highest-scoring sentences and re-emits them in
// document order. The score is min(length, 160) plus a positional bonus of
// 40 for the first sentence, decreasing by 4 per position; longer and
// earlier sentences are preferred. The scoring is deterministic so the same
// document always summarizes identically.
func (e *Engine) answerSummary(_ string, doc docView) string {
	if len(doc.sentences) == 0 {
		return MsgNoMatch
	}

	type scored struct {
		index int
		score int
	}
	ranked := make([]scored, len(doc.sentences))
	for i, s := range doc.sentences {
		score := len(s)
		if score > 160 {
			score = 160
		}
		if bonus := 40 - 4*i; bonus > 0 {
			score += bonus
		}
		ranked[i] = scored{index: i, score: score}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].index < ranked[b].index
	})

	n := e.opts.SummarySentences
	if n > len(ranked) {
		n = len(ranked)
	}
	keep := ranked[:n]
	sort.Slice(keep, func(a, b int) bool { return keep[a].index < keep[b].index })

	parts := make([]string, n)
	for i, s := range keep {
		parts[i] = doc.sentences[s.index]
	}
	return "Summary: " + strings.Join(parts, " ")
}

// answerCount lists the numeric tokens appearing in the document.
func (e *Engine) answerCount(_ string, doc docView) string {
	numbers := numberPattern.FindAllString(doc.text, -1)
	if len(numbers) == 0 {
		return MsgNoNumbersFound
	}
	if len(numbers) > e.opts.MaxNumbers {
		numbers = numbers[:e.opts.MaxNumbers]
	}
	return "The document mentions these numbers: " + strings.Join(numbers, ", ")
}

// answerWho lists capitalized word sequences as proper-noun candidates,
// deduplicated in order of first appearance.
func (e *Engine) answerWho(_ string, doc docView) string {
	matches := properNamePattern.FindAllString(doc.text, -1)
	seen := make(map[string]struct{}, len(matches))
	var names []string
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		names = append(names, m)
		if len(names) == e.opts.MaxNames {
			break
		}
	}
	if len(names) == 0 {
		return MsgNoEntitiesFound
	}
	return "People or entities mentioned: " + strings.Join(names, ", ")
}

// answerKeywords is the default rule: score every sentence by how many
// question keywords it shares and return the best ones, ties broken by
// original sentence order.
func (e *Engine) answerKeywords(question string, doc docView) string {
	keywords := Keywords(question)
	if len(keywords) == 0 {
		return MsgNoMatch
	}

	type scored struct {
		index   int
		overlap int
	}
	var hits []scored
	for i, s := range doc.sentences {
		words := tokenSet(strings.ToLower(s))
		overlap := 0
		for _, k := range keywords {
			if _, ok := words[k]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			hits = append(hits, scored{index: i, overlap: overlap})
		}
	}
	if len(hits) == 0 {
		return MsgNoMatch
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].overlap != hits[b].overlap {
			return hits[a].overlap > hits[b].overlap
		}
		return hits[a].index < hits[b].index
	})
	n := e.opts.MaxMatches
	if n > len(hits) {
		n = len(hits)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = doc.sentences[hits[i].index]
	}
	return "Based on the document: " + strings.Join(parts, " ")
}

// SplitSentences segments text on sentence-terminating punctuation,
// keeping the terminator with its sentence and discarding whitespace-only
// fragments. A trailing fragment without a terminator counts as a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if strings.Trim(s, ".!? ") == "" {
			return
		}
		sentences = append(sentences, s)
	}

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return sentences
}

// Keywords extracts the matching tokens of a question: lower-cased words
// longer than three characters that are not stop-words, deduplicated.
func Keywords(question string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func tokenSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.Trim(w, ".,;:!?\"'()[]")] = struct{}{}
	}
	return set
}

func containsAny(patterns ...string) func(string) bool {
	return func(q string) bool {
		for _, p := range patterns {
			if strings.Contains(q, p) {
				return true
			}
		}
		return false
	}
}
