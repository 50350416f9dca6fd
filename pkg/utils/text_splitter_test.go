package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 1500, 200)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("chunks = %v, want the input unchanged", chunks)
	}
}

func TestSplitTextChunking(t *testing.T) {
	text := strings.Repeat("a", 3000)
	chunks := SplitText(text, 1500, 200)

	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want at least 2", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 1500 {
			t.Errorf("chunk %d length = %d, want <= 1500", i, len(c))
		}
	}

	// Overlap: the tail of each chunk reappears at the head of the next.
	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i][len(chunks[i])-200:]
		if !strings.HasPrefix(chunks[i+1], tail) {
			t.Errorf("chunk %d does not start with the overlap of chunk %d", i+1, i)
		}
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("b", 100)
	chunks := SplitText(text, 10, 20)

	if len(chunks) == 0 {
		t.Fatal("no chunks returned")
	}
	// The fallback step equals the chunk size, so content is not duplicated.
	joined := strings.Join(chunks, "")
	if joined != text {
		t.Errorf("joined chunks differ from input (len %d vs %d)", len(joined), len(text))
	}
}
