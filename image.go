package gslides

// Image is a picture element. ContentURL is the server-hosted rendition and
// expires; SourceURL is the address the image was originally inserted from
// and is what create requests use.
type Image struct {
	ContentURL      *string          `json:"contentUrl,omitempty"`
	ImageProperties *ImageProperties `json:"imageProperties,omitempty"`
	SourceURL       *string          `json:"sourceUrl,omitempty"`
	Placeholder     *Placeholder     `json:"placeholder,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*Image) elementKind() ElementKind { return KindImage }

type ImageProperties struct {
	CropProperties *CropProperties `json:"cropProperties,omitempty"`
	Transparency   *float64        `json:"transparency,omitempty"`
	Brightness     *float64        `json:"brightness,omitempty"`
	Contrast       *float64        `json:"contrast,omitempty"`
	Recolor        *Recolor        `json:"recolor,omitempty"`
	Outline        *Outline        `json:"outline,omitempty"`
	Shadow         *Shadow         `json:"shadow,omitempty"`
	Link           *Link           `json:"link,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// CropProperties crops an image by fractional offsets from each edge plus a
// clockwise rotation in radians.
type CropProperties struct {
	LeftOffset   *float64 `json:"leftOffset,omitempty"`
	RightOffset  *float64 `json:"rightOffset,omitempty"`
	TopOffset    *float64 `json:"topOffset,omitempty"`
	BottomOffset *float64 `json:"bottomOffset,omitempty"`
	Angle        *float64 `json:"angle,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
