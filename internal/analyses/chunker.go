package analyses

import "strings"

// ChunkContent splits content into ordered, size-bounded chunks. Content at
// or under maxLength comes back as a single chunk holding the trimmed input.
// Oversized content splits on paragraph boundaries, accumulating paragraphs
// until the next one would push past maxLength; a paragraph that alone
// exceeds maxLength is split on sentence boundaries with the same
// accumulate-and-flush rule. A single sentence longer than maxLength is
// still emitted whole: the limit is a target, not a hard ceiling.
func ChunkContent(content string, maxLength int) []Chunk {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	if len(trimmed) <= maxLength {
		return []Chunk{{Index: 0, Text: trimmed}}
	}

	var texts []string
	var current string

	flush := func() {
		if s := strings.TrimSpace(current); s != "" {
			texts = append(texts, s)
		}
		current = ""
	}
	add := func(unit, sep string) {
		if current == "" {
			current = unit
			return
		}
		if len(current)+len(sep)+len(unit) > maxLength {
			flush()
			current = unit
			return
		}
		current += sep + unit
	}

	for _, paragraph := range strings.Split(trimmed, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		if len(paragraph) <= maxLength {
			add(paragraph, "\n\n")
			continue
		}
		for _, sentence := range splitSentences(paragraph) {
			add(sentence, " ")
		}
	}
	flush()

	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{Index: i, Text: text}
	}
	return chunks
}

// splitSentences breaks a paragraph after terminal punctuation followed by
// whitespace (or end of text).
func splitSentences(paragraph string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(paragraph); i++ {
		c := paragraph[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 < len(paragraph) && !isSpace(paragraph[i+1]) {
			continue
		}
		if s := strings.TrimSpace(paragraph[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(paragraph[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}
