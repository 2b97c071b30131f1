package keywords

// English stop words and filler sounds, lower case
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"about", "above", "after", "again", "against", "all", "also", "am", "and",
		"any", "are", "aren", "because", "been", "before", "being", "below",
		"between", "both", "but", "can", "cannot", "could", "couldn", "did",
		"didn", "does", "doesn", "doing", "don", "down", "during", "each", "few",
		"for", "from", "further", "had", "hadn", "has", "hasn", "have", "haven",
		"having", "her", "here", "hers", "herself", "him", "himself", "his",
		"how", "into", "isn", "its", "itself", "just", "let", "like", "more",
		"most", "mustn", "myself", "nor", "not", "now", "off", "once", "only",
		"other", "ought", "our", "ours", "ourselves", "out", "over", "own",
		"really", "same", "shan", "she", "should", "shouldn", "some", "such",
		"than", "that", "the", "their", "theirs", "them", "themselves", "then",
		"there", "these", "they", "this", "those", "through", "too", "under",
		"until", "very", "was", "wasn", "were", "weren", "what", "when", "where",
		"which", "while", "who", "whom", "why", "will", "with", "won", "would",
		"wouldn", "yeah", "yes", "you", "your", "yours", "yourself", "yourselves",
		"okay", "mhm", "uhm", "umm",
	} {
		stopWords[w] = struct{}{}
	}
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
