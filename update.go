package gslides

import (
	"errors"
	"fmt"
)

// UpdateRequests builds the batch that writes an element's editable state
// onto an existing element, typically one matched on another slide. The
// target is objectID when given, else e.ObjectID.
//
// Shapes contribute their text runs and styles. Images, videos, lines and
// sheets charts contribute a single update of their properties, masked to
// exactly the fields present in the model so absent fields keep inheriting.
// Every kind contributes title and description when set. Read-only state
// (content URLs, rendered word art text, table structure) produces no
// requests.
func UpdateRequests(e *PageElement, objectID string) ([]*Request, error) {
	return updateRequests(e, objectID, true)
}

func updateRequests(e *PageElement, objectID string, includeText bool) ([]*Request, error) {
	if objectID == "" {
		objectID = e.ObjectID
	}
	if objectID == "" {
		return nil, errors.New("update requests: no target object id")
	}

	var reqs []*Request
	switch v := e.Element.(type) {
	case *Shape:
		if includeText {
			text, err := textRequests(objectID, v.Text)
			if err != nil {
				return nil, err
			}
			reqs = append(reqs, text...)
		}
	case *Image:
		if v.ImageProperties != nil {
			props, fields, err := encodedProperties(v.ImageProperties)
			if err != nil {
				return nil, fmt.Errorf("image %q: %w", objectID, err)
			}
			if len(props) > 0 {
				reqs = append(reqs, &Request{UpdateImageProperties: &UpdateImagePropertiesRequest{
					ObjectID:        objectID,
					ImageProperties: props,
					Fields:          fields,
				}})
			}
		}
	case *Video:
		if v.VideoProperties != nil {
			props, fields, err := encodedProperties(v.VideoProperties)
			if err != nil {
				return nil, fmt.Errorf("video %q: %w", objectID, err)
			}
			if len(props) > 0 {
				reqs = append(reqs, &Request{UpdateVideoProperties: &UpdateVideoPropertiesRequest{
					ObjectID:        objectID,
					VideoProperties: props,
					Fields:          fields,
				}})
			}
		}
	case *Line:
		if v.LineProperties != nil {
			props, fields, err := encodedProperties(v.LineProperties)
			if err != nil {
				return nil, fmt.Errorf("line %q: %w", objectID, err)
			}
			if len(props) > 0 {
				reqs = append(reqs, &Request{UpdateLineProperties: &UpdateLinePropertiesRequest{
					ObjectID:       objectID,
					LineProperties: props,
					Fields:         fields,
				}})
			}
		}
	case *SheetsChart:
		if v.SheetsChartProperties != nil {
			props, fields, err := encodedProperties(v.SheetsChartProperties)
			if err != nil {
				return nil, fmt.Errorf("sheets chart %q: %w", objectID, err)
			}
			if len(props) > 0 {
				reqs = append(reqs, &Request{UpdateSheetsChartProperties: &UpdateSheetsChartPropertiesRequest{
					ObjectID:              objectID,
					SheetsChartProperties: props,
					Fields:                fields,
				}})
			}
		}
	}

	if meta := metadataRequest(e, objectID); meta != nil {
		reqs = append(reqs, meta)
	}
	return reqs, nil
}

// metadataRequest restores title and description, the two writable fields
// that live on the element itself rather than on a variant.
func metadataRequest(e *PageElement, objectID string) *Request {
	props := map[string]any{}
	if e.Title != nil {
		props["title"] = *e.Title
	}
	if e.Description != nil {
		props["description"] = *e.Description
	}
	if len(props) == 0 {
		return nil
	}
	return &Request{UpdatePageElementProperties: &UpdatePageElementPropertiesRequest{
		ObjectID:              objectID,
		PageElementProperties: props,
		Fields:                FieldMask(props),
	}}
}

// PageUpdateRequests builds the requests that copy a page's own properties
// onto the page named by objectID: an updatePageProperties for background
// and color scheme, and an updateSlideProperties for the slide-level flags.
//
// Slide properties that cannot be written are removed before the mask is
// derived: updateSlideProperties rejects masterObjectId, layoutObjectId is
// set when the slide is created, and the notesPage subtree is read-only
// through this request.
func PageUpdateRequests(p *Page, objectID string) ([]*Request, error) {
	if objectID == "" {
		objectID = p.ObjectID
	}
	if objectID == "" {
		return nil, errors.New("page update requests: no target object id")
	}

	var reqs []*Request
	if p.PageProperties != nil {
		props, fields, err := encodedProperties(p.PageProperties)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", objectID, err)
		}
		if len(props) > 0 {
			reqs = append(reqs, &Request{UpdatePageProperties: &UpdatePagePropertiesRequest{
				ObjectID:       objectID,
				PageProperties: props,
				Fields:         fields,
			}})
		}
	}
	if p.SlideProperties != nil {
		props, _, err := encodedProperties(p.SlideProperties)
		if err != nil {
			return nil, fmt.Errorf("slide %q: %w", objectID, err)
		}
		delete(props, "masterObjectId")
		delete(props, "layoutObjectId")
		delete(props, "notesPage")
		if len(props) > 0 {
			reqs = append(reqs, &Request{UpdateSlideProperties: &UpdateSlidePropertiesRequest{
				ObjectID:        objectID,
				SlideProperties: props,
				Fields:          FieldMask(props),
			}})
		}
	}
	return reqs, nil
}

// encodedProperties encodes a properties struct to its wire form, strips
// propertyState markers that updates must not echo back, and derives the
// matching field mask.
func encodedProperties(props any) (map[string]any, string, error) {
	m, err := encodeStruct(props)
	if err != nil {
		return nil, "", err
	}
	stripPropertyState(m)
	return m, FieldMask(m), nil
}
