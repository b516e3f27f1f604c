package gslides

import "fmt"

// Video is an embedded video element.
type Video struct {
	URL             *string          `json:"url,omitempty"`
	Source          *VideoSource     `json:"source,omitempty"`
	ID              string           `json:"id,omitempty"`
	VideoProperties *VideoProperties `json:"videoProperties,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

func (*Video) elementKind() ElementKind { return KindVideo }

// VideoSource identifies where a video is hosted. The wire form is either a
// bare source-type string or an object also naming the video id. Bare
// records which form was decoded; encoding reproduces the bare string only
// when nothing but the type is populated.
type VideoSource struct {
	Type VideoSourceType `json:"type,omitempty"`
	ID   string          `json:"id,omitempty"`
	Bare bool

	UnknownFields map[string]any `json:"-"`
}

func (s *VideoSource) decodeAPI(raw any) error {
	switch v := raw.(type) {
	case string:
		s.Type = VideoSourceType(v)
		s.Bare = true
		return nil
	case map[string]any:
		s.Bare = false
		return decodeStruct(s, raw)
	}
	return fmt.Errorf("%w: video source: want string or object, got %s", ErrSchemaMismatch, jsonTypeName(raw))
}

func (s *VideoSource) encodeAPI() (any, error) {
	if s.Bare && s.ID == "" && len(s.UnknownFields) == 0 {
		return string(s.Type), nil
	}
	return encodeStruct(s)
}

type VideoProperties struct {
	Outline  *Outline `json:"outline,omitempty"`
	AutoPlay *bool    `json:"autoPlay,omitempty"`
	Start    *int64   `json:"start,omitempty"`
	End      *int64   `json:"end,omitempty"`
	Mute     *bool    `json:"mute,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
