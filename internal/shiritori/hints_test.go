package shiritori

import "testing"

func TestImageCycle(t *testing.T) {
	h := NewHints()
	want := []ImageState{ImageSilhouette, ImageBlurred, ImageFull, ImageHidden}
	for _, w := range want {
		h = h.Toggle(HintImage)
		if h.Image != w {
			t.Fatalf("image = %s, want %s", h.Image, w)
		}
	}
}

func TestToggleBooleans(t *testing.T) {
	h := NewHints().Toggle(HintGeneration).Toggle(HintType)
	if !h.Generation || !h.Type || h.Genus {
		t.Errorf("hints = %+v", h)
	}
	if h = h.Toggle(HintGeneration); h.Generation {
		t.Error("second toggle should conceal")
	}
}

func TestRevealAll(t *testing.T) {
	h := NewHints().RevealAll()
	if !h.Generation || !h.Genus || !h.Type || h.Image != ImageFull {
		t.Errorf("RevealAll = %+v", h)
	}
}

func TestParseHintKind(t *testing.T) {
	for _, s := range []string{"generation", "genus", "type", "image"} {
		if _, err := ParseHintKind(s); err != nil {
			t.Errorf("ParseHintKind(%s): %v", s, err)
		}
	}
	if _, err := ParseHintKind("cry"); err == nil {
		t.Error("expected error for unknown hint")
	}
}
