package scoring

// StopWords is a set of lowercased words ignored by keyword extraction.
type StopWords map[string]struct{}

// NewStopWords builds a set from a word list.
func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Has reports whether w is a stop word.
func (s StopWords) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// BasicStopWords is the default list. It only removes the most frequent
// filler words of three letters or more.
var BasicStopWords = NewStopWords(
	"this", "that", "with", "from", "and", "the", "for", "are", "also", "your", "have", "been", "was",
)

// EnglishStopWords is a fuller English list for corpora where job
// descriptions are long-form prose.
var EnglishStopWords = NewStopWords(
	"about", "above", "after", "again", "against", "ain", "all", "and", "any", "are", "aren",
	"because", "been", "before", "being", "below", "between", "both", "but", "can", "couldn",
	"did", "didn", "does", "doesn", "doing", "don", "down", "during", "each", "few", "for",
	"from", "further", "had", "hadn", "has", "hasn", "have", "haven", "having", "her", "here",
	"hers", "herself", "him", "himself", "his", "how", "into", "isn", "its", "itself", "just",
	"mightn", "more", "most", "mustn", "myself", "needn", "nor", "not", "now", "off", "once",
	"only", "other", "our", "ours", "ourselves", "out", "over", "own", "same", "shan", "she",
	"should", "shouldn", "some", "such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "there", "these", "they", "this", "those", "through", "too", "under",
	"until", "very", "was", "wasn", "were", "weren", "what", "when", "where", "which", "while",
	"who", "whom", "why", "will", "with", "won", "wouldn", "you", "your", "yours", "yourself",
	"yourselves", "also",
)

// StopWordsByName resolves a configured list name. Unknown names fall back
// to BasicStopWords.
func StopWordsByName(name string) StopWords {
	switch name {
	case "english":
		return EnglishStopWords
	default:
		return BasicStopWords
	}
}
