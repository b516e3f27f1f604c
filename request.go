package gslides

import (
	"encoding/json"
	"fmt"
)

// Request is one operation in a presentations.batchUpdate call. Exactly one
// field is populated. The batch applies operations in order against a single
// document snapshot; a failure at operation k leaves operations 0..k-1
// applied and aborts the rest.
type Request struct {
	CreateSlide       *CreateSlideRequest       `json:"createSlide,omitempty"`
	CreateShape       *CreateShapeRequest       `json:"createShape,omitempty"`
	CreateImage       *CreateImageRequest       `json:"createImage,omitempty"`
	CreateTable       *CreateTableRequest       `json:"createTable,omitempty"`
	CreateVideo       *CreateVideoRequest       `json:"createVideo,omitempty"`
	CreateLine        *CreateLineRequest        `json:"createLine,omitempty"`
	CreateWordArt     *CreateWordArtRequest     `json:"createWordArt,omitempty"`
	CreateSheetsChart *CreateSheetsChartRequest `json:"createSheetsChart,omitempty"`

	InsertText             *InsertTextRequest             `json:"insertText,omitempty"`
	DeleteText             *DeleteTextRequest             `json:"deleteText,omitempty"`
	UpdateTextStyle        *UpdateTextStyleRequest        `json:"updateTextStyle,omitempty"`
	UpdateParagraphStyle   *UpdateParagraphStyleRequest   `json:"updateParagraphStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBulletsRequest `json:"createParagraphBullets,omitempty"`
	DeleteParagraphBullets *DeleteParagraphBulletsRequest `json:"deleteParagraphBullets,omitempty"`

	UpdateShapeProperties       *UpdateShapePropertiesRequest       `json:"updateShapeProperties,omitempty"`
	UpdateImageProperties       *UpdateImagePropertiesRequest       `json:"updateImageProperties,omitempty"`
	UpdateVideoProperties       *UpdateVideoPropertiesRequest       `json:"updateVideoProperties,omitempty"`
	UpdateLineProperties        *UpdateLinePropertiesRequest        `json:"updateLineProperties,omitempty"`
	UpdateSheetsChartProperties *UpdateSheetsChartPropertiesRequest `json:"updateSheetsChartProperties,omitempty"`
	UpdatePageElementProperties *UpdatePageElementPropertiesRequest `json:"updatePageElementProperties,omitempty"`
	UpdatePageProperties        *UpdatePagePropertiesRequest        `json:"updatePageProperties,omitempty"`
	UpdateSlideProperties       *UpdateSlidePropertiesRequest       `json:"updateSlideProperties,omitempty"`

	DuplicateObject      *DuplicateObjectRequest      `json:"duplicateObject,omitempty"`
	DeleteObject         *DeleteObjectRequest         `json:"deleteObject,omitempty"`
	UpdateSlidesPosition *UpdateSlidesPositionRequest `json:"updateSlidesPosition,omitempty"`
	ReplaceAllText       *ReplaceAllTextRequest       `json:"replaceAllText,omitempty"`
	ReplaceImage         *ReplaceImageRequest         `json:"replaceImage,omitempty"`
	GroupObjects         *GroupObjectsRequest         `json:"groupObjects,omitempty"`
	UngroupObjects       *UngroupObjectsRequest       `json:"ungroupObjects,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Encode returns the request's wire form.
func (r *Request) Encode() (map[string]any, error) {
	return encodeStruct(r)
}

// EncodeRequests encodes a batch in order, ready to be placed under the
// "requests" key of a batchUpdate body.
func EncodeRequests(reqs []*Request) ([]any, error) {
	out := make([]any, len(reqs))
	for i, r := range reqs {
		m, err := r.Encode()
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		out[i] = m
	}
	return out, nil
}

// PageElementProperties places a created element: parent page, size, and
// transform.
type PageElementProperties struct {
	PageObjectID string           `json:"pageObjectId,omitempty"`
	Size         *Size            `json:"size,omitempty"`
	Transform    *AffineTransform `json:"transform,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// LayoutReference names a layout either by id or by predefined name.
// Exactly one branch must be set.
type LayoutReference struct {
	LayoutID         string           `json:"layoutId,omitempty"`
	PredefinedLayout PredefinedLayout `json:"predefinedLayout,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Validate checks the exactly-one-branch rule.
func (lr *LayoutReference) Validate() error {
	if lr == nil {
		return nil
	}
	if (lr.LayoutID == "") == (lr.PredefinedLayout == "") {
		return fmt.Errorf("%w: layout reference needs exactly one of layoutId or predefinedLayout",
			ErrUnsupportedVariant)
	}
	return nil
}

type LayoutPlaceholderIDMapping struct {
	LayoutPlaceholder         *Placeholder `json:"layoutPlaceholder,omitempty"`
	LayoutPlaceholderObjectID string       `json:"layoutPlaceholderObjectId,omitempty"`
	ObjectID                  string       `json:"objectId,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateSlideRequest struct {
	ObjectID              string                        `json:"objectId,omitempty"`
	InsertionIndex        *int64                        `json:"insertionIndex,omitempty"`
	SlideLayoutReference  *LayoutReference              `json:"slideLayoutReference,omitempty"`
	PlaceholderIDMappings []*LayoutPlaceholderIDMapping `json:"placeholderIdMappings,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateShapeRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
	ShapeType         ShapeType              `json:"shapeType,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateImageRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
	URL               string                 `json:"url,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateTableRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
	Rows              int64                  `json:"rows,omitempty"`
	Columns           int64                  `json:"columns,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateVideoRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
	Source            VideoSourceType        `json:"source,omitempty"`
	ID                string                 `json:"id,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateLineRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
	LineCategory      LineCategory           `json:"lineCategory,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateWordArtRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
	RenderedText      string                 `json:"renderedText,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateSheetsChartRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
	SpreadsheetID     string                 `json:"spreadsheetId,omitempty"`
	ChartID           *int64                 `json:"chartId,omitempty"`
	LinkingMode       LinkingMode            `json:"linkingMode,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Range scopes a text operation. Fixed ranges carry both indices,
// FROM_START_INDEX only the start, ALL neither.
type Range struct {
	Type       RangeType `json:"type,omitempty"`
	StartIndex *int64    `json:"startIndex,omitempty"`
	EndIndex   *int64    `json:"endIndex,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type InsertTextRequest struct {
	ObjectID       string             `json:"objectId,omitempty"`
	CellLocation   *TableCellLocation `json:"cellLocation,omitempty"`
	Text           string             `json:"text,omitempty"`
	InsertionIndex *int64             `json:"insertionIndex,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type DeleteTextRequest struct {
	ObjectID     string             `json:"objectId,omitempty"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdateTextStyleRequest struct {
	ObjectID     string             `json:"objectId,omitempty"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	Style        *TextStyle         `json:"style,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`
	Fields       string             `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdateParagraphStyleRequest struct {
	ObjectID     string             `json:"objectId,omitempty"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	Style        *ParagraphStyle    `json:"style,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`
	Fields       string             `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type CreateParagraphBulletsRequest struct {
	ObjectID     string             `json:"objectId,omitempty"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`
	BulletPreset BulletGlyphPreset  `json:"bulletPreset,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type DeleteParagraphBulletsRequest struct {
	ObjectID     string             `json:"objectId,omitempty"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// The update*Properties requests carry their properties as the encoded,
// already-stripped wire object, paired with the field mask derived from it.
// Keeping the payload in encoded form guarantees the mask and the payload
// can never disagree.

type UpdateShapePropertiesRequest struct {
	ObjectID        string         `json:"objectId,omitempty"`
	ShapeProperties map[string]any `json:"shapeProperties,omitempty"`
	Fields          string         `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdateImagePropertiesRequest struct {
	ObjectID        string         `json:"objectId,omitempty"`
	ImageProperties map[string]any `json:"imageProperties,omitempty"`
	Fields          string         `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdateVideoPropertiesRequest struct {
	ObjectID        string         `json:"objectId,omitempty"`
	VideoProperties map[string]any `json:"videoProperties,omitempty"`
	Fields          string         `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdateLinePropertiesRequest struct {
	ObjectID       string         `json:"objectId,omitempty"`
	LineProperties map[string]any `json:"lineProperties,omitempty"`
	Fields         string         `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdateSheetsChartPropertiesRequest struct {
	ObjectID              string         `json:"objectId,omitempty"`
	SheetsChartProperties map[string]any `json:"sheetsChartProperties,omitempty"`
	Fields                string         `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdatePageElementPropertiesRequest struct {
	ObjectID              string         `json:"objectId,omitempty"`
	PageElementProperties map[string]any `json:"pageElementProperties,omitempty"`
	Fields                string         `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdatePagePropertiesRequest struct {
	ObjectID       string         `json:"objectId,omitempty"`
	PageProperties map[string]any `json:"pageProperties,omitempty"`
	Fields         string         `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdateSlidePropertiesRequest struct {
	ObjectID        string         `json:"objectId,omitempty"`
	SlideProperties map[string]any `json:"slideProperties,omitempty"`
	Fields          string         `json:"fields,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// DuplicateObjectRequest copies an object. ObjectIDs optionally pre-assigns
// ids to the duplicate and its descendants, keyed by source id.
type DuplicateObjectRequest struct {
	ObjectID  string            `json:"objectId,omitempty"`
	ObjectIDs map[string]string `json:"objectIds,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type DeleteObjectRequest struct {
	ObjectID string `json:"objectId,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UpdateSlidesPositionRequest struct {
	SlideObjectIDs []string `json:"slideObjectIds,omitempty"`
	InsertionIndex *int64   `json:"insertionIndex,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type SubstringMatchCriteria struct {
	Text      string `json:"text,omitempty"`
	MatchCase *bool  `json:"matchCase,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type ReplaceAllTextRequest struct {
	ReplaceText   string                  `json:"replaceText,omitempty"`
	ContainsText  *SubstringMatchCriteria `json:"containsText,omitempty"`
	PageObjectIDs []string                `json:"pageObjectIds,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type ReplaceImageRequest struct {
	ImageObjectID      string             `json:"imageObjectId,omitempty"`
	URL                string             `json:"url,omitempty"`
	ImageReplaceMethod ImageReplaceMethod `json:"imageReplaceMethod,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type GroupObjectsRequest struct {
	GroupObjectID     string   `json:"groupObjectId,omitempty"`
	ChildrenObjectIDs []string `json:"childrenObjectIds,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type UngroupObjectsRequest struct {
	ObjectIDs []string `json:"objectIds,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// BatchUpdateResponse is the reply to a batchUpdate call. Replies holds one
// entry per request, in request order; requests without a payload reply with
// an empty entry.
type BatchUpdateResponse struct {
	PresentationID string        `json:"presentationId,omitempty"`
	Replies        []*Reply      `json:"replies,omitempty"`
	WriteControl   *WriteControl `json:"writeControl,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// DecodeBatchUpdateResponse parses the JSON body of a batchUpdate response.
func DecodeBatchUpdateResponse(data []byte) (*BatchUpdateResponse, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse batch update response JSON: %w", err)
	}
	var resp BatchUpdateResponse
	if err := decodeStruct(&resp, m); err != nil {
		return nil, err
	}
	return &resp, nil
}

type WriteControl struct {
	RequiredRevisionID string `json:"requiredRevisionId,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// Reply is one entry of BatchUpdateResponse.Replies.
type Reply struct {
	CreateSlide       *ObjectIDReply `json:"createSlide,omitempty"`
	CreateShape       *ObjectIDReply `json:"createShape,omitempty"`
	CreateImage       *ObjectIDReply `json:"createImage,omitempty"`
	CreateTable       *ObjectIDReply `json:"createTable,omitempty"`
	CreateVideo       *ObjectIDReply `json:"createVideo,omitempty"`
	CreateLine        *ObjectIDReply `json:"createLine,omitempty"`
	CreateSheetsChart *ObjectIDReply `json:"createSheetsChart,omitempty"`
	DuplicateObject   *ObjectIDReply `json:"duplicateObject,omitempty"`
	GroupObjects      *ObjectIDReply `json:"groupObjects,omitempty"`

	ReplaceAllText *ReplaceAllTextReply `json:"replaceAllText,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

// ObjectID returns the created or duplicated object's id, whichever reply
// branch carries it.
func (r *Reply) ObjectID() string {
	if r == nil {
		return ""
	}
	for _, br := range []*ObjectIDReply{
		r.CreateSlide, r.CreateShape, r.CreateImage, r.CreateTable,
		r.CreateVideo, r.CreateLine, r.CreateSheetsChart,
		r.DuplicateObject, r.GroupObjects,
	} {
		if br != nil {
			return br.ObjectID
		}
	}
	return ""
}

// ObjectIDReply is the shared shape of every reply that reports a new
// object's id.
type ObjectIDReply struct {
	ObjectID string `json:"objectId,omitempty"`

	UnknownFields map[string]any `json:"-"`
}

type ReplaceAllTextReply struct {
	OccurrencesChanged *int64 `json:"occurrencesChanged,omitempty"`

	UnknownFields map[string]any `json:"-"`
}
