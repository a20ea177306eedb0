package shiritori

import "fmt"

// ImageState is the reveal stage of the image hint.
type ImageState string

const (
	ImageHidden     ImageState = "hidden"
	ImageSilhouette ImageState = "silhouette"
	ImageBlurred    ImageState = "blurred"
	ImageFull       ImageState = "full"
)

// Next advances hidden → silhouette → blurred → full → hidden.
func (s ImageState) Next() ImageState {
	switch s {
	case ImageHidden:
		return ImageSilhouette
	case ImageSilhouette:
		return ImageBlurred
	case ImageBlurred:
		return ImageFull
	default:
		return ImageHidden
	}
}

type HintKind string

const (
	HintGeneration HintKind = "generation"
	HintGenus      HintKind = "genus"
	HintType       HintKind = "type"
	HintImage      HintKind = "image"
)

func ParseHintKind(s string) (HintKind, error) {
	switch k := HintKind(s); k {
	case HintGeneration, HintGenus, HintType, HintImage:
		return k, nil
	}
	return "", fmt.Errorf("unknown hint %q", s)
}

// Hints is the reveal state of a single card.
type Hints struct {
	Generation bool       `json:"generation"`
	Genus      bool       `json:"genus"`
	Type       bool       `json:"type"`
	Image      ImageState `json:"image"`
}

// NewHints returns a card with every hint concealed.
func NewHints() Hints {
	return Hints{Image: ImageHidden}
}

// Toggle flips a boolean hint or advances the image hint.
func (h Hints) Toggle(kind HintKind) Hints {
	switch kind {
	case HintGeneration:
		h.Generation = !h.Generation
	case HintGenus:
		h.Genus = !h.Genus
	case HintType:
		h.Type = !h.Type
	case HintImage:
		h.Image = h.Image.Next()
	}
	return h
}

// RevealAll is applied once the answer is confirmed.
func (h Hints) RevealAll() Hints {
	return Hints{Generation: true, Genus: true, Type: true, Image: ImageFull}
}
