package contentstream

import (
	"math"
	"testing"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// TestWords tests word boxes from text shows on an 800 point page
func TestWords(t *testing.T) {
	content := []byte("BT\n/F1 10 Tf\n1 0 0 1 100 700 Tm\n(Hola mundo) Tj\n( fin) Tj\nET\n" +
		"BT\n1 0 0 1 50 100 Tm\n[(Ca) -200 (f\\351)] TJ\nET")

	words := Words(content, 800)
	want := []model.Word{
		{Text: "Hola", BBox: model.NewRect(100, 92, 120, 102)},
		{Text: "mundo", BBox: model.NewRect(125, 92, 150, 102)},
		{Text: "fin", BBox: model.NewRect(155, 92, 170, 102)},
		{Text: "Café", BBox: model.NewRect(50, 692, 70, 702)},
	}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %d: %+v", len(want), len(words), words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %+v, want %+v", i, words[i], want[i])
		}
	}
}

// TestWordsScaledMatrix tests that the text matrix scale sizes the boxes
func TestWordsScaledMatrix(t *testing.T) {
	words := Words([]byte("BT\n/F1 1 Tf\n8 0 0 8 0 0 Tm\n(ab) Tj\nET"), 100)
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %+v", words)
	}
	if got := words[0].BBox; math.Abs(got.Width()-8) > 1e-9 || math.Abs(got.Height()-8) > 1e-9 {
		t.Errorf("unexpected box %+v", got)
	}
}

// TestWordsSkipsMalformed tests that bad operators add no words
func TestWordsSkipsMalformed(t *testing.T) {
	words := Words([]byte("BT\n1 0 0 1 10 10 Tm\n42 Tj\n(   ) Tj\nET"), 100)
	if len(words) != 0 {
		t.Errorf("expected no words, got %+v", words)
	}
}
