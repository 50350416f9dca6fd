package utils

// SplitText splits text into rune-based chunks of at most chunkSize, with
// overlap runes shared between consecutive chunks so sentence context
// survives the boundary. An overlap at or above chunkSize falls back to
// disjoint chunks so the walk always advances.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
