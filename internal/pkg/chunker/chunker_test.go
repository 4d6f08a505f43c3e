package chunker

import (
	"strings"
	"testing"
)

func TestSplit_ShortInputReturnsSingleNormalizedChunk(t *testing.T) {
	input := "The  mitochondrion   is the\n\n\npowerhouse of the cell."
	want := "The mitochondrion is the\npowerhouse of the cell."

	chunks := Split(input, 1000, 200)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != want {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if got := Split("   \n\n  ", 100, 10); got != nil {
		t.Errorf("expected nil for whitespace-only input, got %v", got)
	}
}

func TestSplit_LongInputRespectsMaxSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 120; i++ {
		b.WriteString("This is sentence number one of the corpus. ")
	}

	maxSize := 500
	chunks := Split(b.String(), maxSize, 100)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > maxSize {
			t.Errorf("chunk %d exceeds max size: %d", i, len([]rune(c)))
		}
	}
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	// One terminator placed well past the midpoint of the first window.
	text := strings.Repeat("a", 80) + ". " + strings.Repeat("b", 80)
	chunks := Split(text, 100, 10)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at sentence terminator, got %q", chunks[0])
	}
}

func TestSplit_ParagraphBreakFallback(t *testing.T) {
	text := strings.Repeat("a", 80) + "\n" + strings.Repeat("b", 80)
	chunks := Split(text, 100, 10)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if strings.ContainsRune(chunks[0], 'b') {
		t.Errorf("first chunk should cut at the paragraph break, got %q", chunks[0])
	}
}

func TestSplit_ConsecutiveChunksOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 50) // no boundaries at all
	overlap := 20
	chunks := Split(text, 100, overlap)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-overlap:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's overlap", i)
		}
	}
}

func TestSplit_ReconstructsOriginalText(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Cells replicate through a process called mitosis. ")
	}
	normalized := Normalize(b.String())

	overlap := 50
	chunks := Split(b.String(), 200, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Stitch the chunks back together by dropping each chunk's leading
	// overlap. Cuts land on boundaries, so allow whitespace drift.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		c := []rune(chunks[i])
		if len(c) > overlap {
			rebuilt.WriteString(string(c[overlap:]))
		}
	}

	squash := func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	}
	if squash(rebuilt.String()) != squash(normalized) {
		t.Error("concatenating chunks minus overlaps did not reconstruct the normalized input")
	}
}

func TestSplit_ForwardProgressWithLargeOverlap(t *testing.T) {
	text := strings.Repeat("x", 5000)
	chunks := Split(text, 100, 99) // overlap clamped internally

	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if len(chunks) > 5000 {
		t.Fatalf("runaway chunk count: %d", len(chunks))
	}
}
