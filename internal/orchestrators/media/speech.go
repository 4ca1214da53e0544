package media

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxSpeechChunk is the longest text sent in one synthesis request. A single
// sentence longer than this is sent whole.
const MaxSpeechChunk = 450

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// SplitSpeech splits text after sentence-ending punctuation and packs the
// sentences into chunks of at most MaxSpeechChunk characters.
func SplitSpeech(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	var chunks []string
	for _, s := range sentences {
		if n := len(chunks); n > 0 {
			merged := chunks[n-1] + " " + s
			if utf8.RuneCountInString(merged) <= MaxSpeechChunk {
				chunks[n-1] = merged
				continue
			}
		}
		chunks = append(chunks, s)
	}
	return chunks
}
