package index

import "strings"

// splitTextIntoChunks splits segment text so one embedding call never exceeds
// the limit, re-seeding each chunk with the tail of the previous one.
func splitTextIntoChunks(text string, limit int, overlap int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	// Separators ordered from best to worst for semantic meaning; the empty
	// string always matches and degrades to a per-rune split.
	separators := []string{"\n\n", "\n", ". ", " ", ""}

	var splitChar string
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			break
		}
	}

	parts := strings.Split(text, splitChar)

	var chunks []string
	var currentChunk strings.Builder

	for _, part := range parts {
		// A single part can exceed the limit on its own, for example one
		// unbroken token longer than the chunk size. Hard-cut it so no chunk
		// ever outgrows the limit; the last window keeps accumulating.
		if len(part) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
				currentChunk.Reset()
			}
			pieces := hardSplit(part, limit, overlap)
			chunks = append(chunks, pieces[:len(pieces)-1]...)
			currentChunk.WriteString(pieces[len(pieces)-1])
			continue
		}

		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			overlapContent := ""
			if currentChunk.Len() > overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
			}

			currentChunk.Reset()
			// Skip the overlap seed when it would push this chunk past the
			// limit together with the incoming part.
			if len(overlapContent)+len(splitChar)+len(part) <= limit {
				currentChunk.WriteString(overlapContent)
			}
		}

		if currentChunk.Len() > 0 && splitChar != "" {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}

// hardSplit cuts text into windows of at most limit bytes, stepping by
// limit-overlap so adjacent windows share context.
func hardSplit(text string, limit int, overlap int) []string {
	step := limit - overlap
	if step < 1 {
		step = limit
	}

	var pieces []string
	for start := 0; start < len(text); start += step {
		end := min(start+limit, len(text))
		pieces = append(pieces, text[start:end])
		if end == len(text) {
			break
		}
	}
	return pieces
}
