package gslides

// Group is a collection of page elements moved and scaled as a unit.
type Group struct {
	Children []*PageElement `json:"children,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*Group) elementKind() ElementKind { return KindGroup }

// SpeakerSpotlight overlays the presenter's camera feed on the slide.
type SpeakerSpotlight struct {
	SpeakerSpotlightProperties *SpeakerSpotlightProperties `json:"speakerSpotlightProperties,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*SpeakerSpotlight) elementKind() ElementKind { return KindSpeakerSpotlight }

type SpeakerSpotlightProperties struct {
	Outline *Outline `json:"outline,omitempty"`
	Shadow  *Shadow  `json:"shadow,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
