package templater

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	gslides "github.com/smorand/gslides-go"
)

// FieldKind classifies what a template field replaces.
type FieldKind string

const (
	FieldText  FieldKind = "text"
	FieldImage FieldKind = "image"
	FieldTable FieldKind = "table"
)

// TemplateField is one replaceable element of a template presentation.
type TemplateField struct {
	Name       string    `json:"name"`
	Kind       FieldKind `json:"kind"`
	SlideID    string    `json:"slide_id"`
	SlideIndex int       `json:"slide_index"`
	ElementID  string    `json:"element_id"`
	Example    string    `json:"example,omitempty"`
}

// Template records the replaceable structure of a presentation so copies of
// it can be filled by field name.
type Template struct {
	Name           string           `json:"name"`
	PresentationID string           `json:"presentation_id"`
	Title          string           `json:"title"`
	CreatedAt      time.Time        `json:"created_at"`
	Fields         []*TemplateField `json:"fields"`
}

// Field returns the named field, or nil.
func (t *Template) Field(name string) *TemplateField {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldNames lists the field names in template order.
func (t *Template) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Save writes the template as indented JSON.
func (t *Template) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode template %q: %w", t.Name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write template %q: %w", t.Name, err)
	}
	return nil
}

// LoadTemplate reads a template written by Save.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", path, err)
	}
	return &tpl, nil
}

// CreateTemplate scans a presentation for replaceable elements, derives a
// field name for each, and marks the elements with a template:<kind>:<name>
// description so fills can find them later. Images, shapes with more than a
// character of text, and tables count as replaceable.
func (t *Templater) CreateTemplate(ctx context.Context, presentationID, name string) (*Template, error) {
	pres, err := t.backend.GetPresentation(ctx, presentationID)
	if err != nil {
		return nil, fmt.Errorf("fetch presentation %q: %w", presentationID, err)
	}

	var title string
	if pres.Title != nil {
		title = *pres.Title
	}
	tpl := &Template{
		Name:           name,
		PresentationID: presentationID,
		Title:          title,
		CreatedAt:      time.Now().UTC(),
	}

	used := make(map[string]bool)
	var reqs []*gslides.Request
	for i, slide := range pres.Slides {
		counter := make(map[FieldKind]int)
		forEachElement(slide, func(el *gslides.PageElement) {
			kind, example := classifyField(el)
			if kind == "" {
				return
			}
			counter[kind]++

			var seed string
			if kind == FieldText {
				seed = example
			}
			fname := fieldName(seed, kind, i, counter[kind], used)
			used[fname] = true

			tpl.Fields = append(tpl.Fields, &TemplateField{
				Name:       fname,
				Kind:       kind,
				SlideID:    slide.ObjectID,
				SlideIndex: i,
				ElementID:  el.ObjectID,
				Example:    example,
			})
			reqs = append(reqs, &gslides.Request{
				UpdatePageElementProperties: &gslides.UpdatePageElementPropertiesRequest{
					ObjectID: el.ObjectID,
					PageElementProperties: map[string]any{
						"description": fmt.Sprintf("template:%s:%s", kind, fname),
					},
					Fields: "description",
				},
			})
		})
	}

	if len(reqs) > 0 {
		if _, err := t.backend.BatchUpdateAll(ctx, presentationID, reqs); err != nil {
			return nil, fmt.Errorf("mark template elements in %q: %w", presentationID, err)
		}
	}

	t.logger.Info("created template",
		slog.String("template", name),
		slog.String("presentation_id", presentationID),
		slog.Int("fields", len(tpl.Fields)),
	)
	return tpl, nil
}

// classifyField decides whether an element is replaceable and captures its
// current content as the field example.
func classifyField(el *gslides.PageElement) (FieldKind, string) {
	switch v := el.Element.(type) {
	case *gslides.Image:
		var url string
		switch {
		case v.SourceURL != nil:
			url = *v.SourceURL
		case v.ContentURL != nil:
			url = *v.ContentURL
		}
		return FieldImage, url
	case *gslides.Shape:
		if len(strings.TrimSpace(v.Text.Text())) > 1 {
			return FieldText, TextMarkdown(v.Text)
		}
	case *gslides.Table:
		return FieldTable, tableMarkdown(v)
	}
	return "", ""
}

var (
	markupMarks = regexp.MustCompile("[#*`~\\[\\]()]+")
	wordPattern = regexp.MustCompile(`\w+`)
)

// fieldName derives a name from the element's text: the first two words,
// lowercased and joined. Short or empty text falls back to a positional
// name; collisions get a numeric suffix.
func fieldName(text string, kind FieldKind, slideIndex, n int, used map[string]bool) string {
	clean := markupMarks.ReplaceAllString(text, "")
	words := wordPattern.FindAllString(clean, 2)

	var base string
	if len(words) > 0 && len(words[0]) > 2 {
		base = strings.ToLower(words[0])
		if len(words) > 1 {
			base += "_" + strings.ToLower(words[1])
		}
	} else {
		base = fmt.Sprintf("slide_%d_%s_%d", slideIndex+1, kind, n)
	}

	name := base
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	return name
}

// ApplyReport summarizes one template application.
type ApplyReport struct {
	PresentationID string           // the filled copy
	Title          string
	Fields         []string         // field names written
	Replaced       map[string]int64 // loose {{key}} substitutions, occurrences changed
	Skipped        []string         // data keys that could not be applied
}

// ApplyTemplate copies the template presentation and fills the copy: field
// values write into their elements by id (Drive copies keep object ids),
// and data keys that name no field run as {{key}} text replacements. An
// empty title defaults to "Copy of " plus the template title.
func (t *Templater) ApplyTemplate(ctx context.Context, tpl *Template, data map[string]any, title string) (*ApplyReport, error) {
	if title == "" {
		title = "Copy of " + tpl.Title
	}
	info, err := t.backend.CopyPresentation(ctx, tpl.PresentationID, title, "")
	if err != nil {
		return nil, fmt.Errorf("copy template %q: %w", tpl.Name, err)
	}

	dup, err := t.backend.GetPresentation(ctx, info.PresentationID)
	if err != nil {
		return nil, fmt.Errorf("fetch copy %q: %w", info.PresentationID, err)
	}

	report := &ApplyReport{
		PresentationID: info.PresentationID,
		Title:          info.Title,
		Replaced:       make(map[string]int64),
	}

	var reqs []*gslides.Request
	fieldKeys := make(map[string]bool)
	for _, f := range tpl.Fields {
		fieldKeys[f.Name] = true
		v, ok := data[f.Name]
		if !ok {
			continue
		}
		switch f.Kind {
		case FieldText:
			el := findElement(dup, f.ElementID)
			if el == nil {
				report.Skipped = append(report.Skipped, f.Name)
				t.logger.Warn("template element missing from copy",
					slog.String("field", f.Name), slog.String("element_id", f.ElementID))
				continue
			}
			if shape, ok := el.Element.(*gslides.Shape); ok && strings.TrimSpace(shape.Text.Text()) != "" {
				reqs = append(reqs, &gslides.Request{DeleteText: &gslides.DeleteTextRequest{
					ObjectID:  f.ElementID,
					TextRange: &gslides.Range{Type: gslides.RangeTypeAll},
				}})
			}
			reqs = append(reqs, markdownProgram(renderValue(v)).requests(f.ElementID)...)
			report.Fields = append(report.Fields, f.Name)

		case FieldImage:
			url := renderValue(v)
			if !isImageURL(url) {
				report.Skipped = append(report.Skipped, f.Name)
				t.logger.Warn("image field value is not an image url",
					slog.String("field", f.Name))
				continue
			}
			reqs = append(reqs, &gslides.Request{ReplaceImage: &gslides.ReplaceImageRequest{
				ImageObjectID: f.ElementID,
				URL:           url,
			}})
			report.Fields = append(report.Fields, f.Name)

		default:
			report.Skipped = append(report.Skipped, f.Name)
			t.logger.Warn("table fields cannot be filled",
				slog.String("field", f.Name))
		}
	}

	looseIdx := make(map[int]string)
	keys := make([]string, 0, len(data))
	for k := range data {
		if !fieldKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		looseIdx[len(reqs)] = k
		reqs = append(reqs, replaceAllTextRequest("{{"+k+"}}", renderValue(data[k])))
	}

	if len(reqs) > 0 {
		responses, err := t.backend.BatchUpdateAll(ctx, info.PresentationID, reqs)
		if err != nil {
			return nil, fmt.Errorf("fill copy %q: %w", info.PresentationID, err)
		}
		replies := flatReplies(responses)
		for idx, key := range looseIdx {
			var changed int64
			if idx < len(replies) && replies[idx] != nil && replies[idx].ReplaceAllText != nil &&
				replies[idx].ReplaceAllText.OccurrencesChanged != nil {
				changed = *replies[idx].ReplaceAllText.OccurrencesChanged
			}
			report.Replaced[key] = changed
		}
	}

	t.logger.Info("applied template",
		slog.String("template", tpl.Name),
		slog.String("presentation_id", info.PresentationID),
		slog.Int("fields", len(report.Fields)),
		slog.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

// ValidationResult reports how template data lines up with a template.
type ValidationResult struct {
	Missing  []string // writable fields with no data key
	Extra    []string // data keys naming no field
	Invalid  []string // image fields whose value is not an image url
	Warnings []string
}

// OK reports whether the data can be applied without loss.
func (r *ValidationResult) OK() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

// ValidateTemplateData checks data against the template's fields without
// touching the API. Extra keys are legal (they run as loose replacements)
// but reported.
func ValidateTemplateData(tpl *Template, data map[string]any) *ValidationResult {
	res := &ValidationResult{}
	for _, f := range tpl.Fields {
		v, ok := data[f.Name]
		switch {
		case f.Kind == FieldTable:
			if ok {
				res.Warnings = append(res.Warnings, fmt.Sprintf("field %q is a table and cannot be filled", f.Name))
			}
		case !ok:
			res.Missing = append(res.Missing, f.Name)
		case f.Kind == FieldImage && !isImageURL(renderValue(v)):
			res.Invalid = append(res.Invalid, f.Name)
		}
	}
	for k := range data {
		if tpl.Field(k) == nil {
			res.Extra = append(res.Extra, k)
		}
	}
	sort.Strings(res.Extra)
	return res
}

// PreviewChange is one field's before and after, truncated for display.
type PreviewChange struct {
	Field      string
	Kind       FieldKind
	SlideIndex int
	Old, New   string
}

// Preview is a dry-run of ApplyTemplate.
type Preview struct {
	Changes   []PreviewChange
	Unchanged []string // fields with no data key
}

// PreviewApplication maps data onto the template's fields without touching
// the API.
func PreviewApplication(tpl *Template, data map[string]any) *Preview {
	p := &Preview{}
	for _, f := range tpl.Fields {
		v, ok := data[f.Name]
		if !ok || f.Kind == FieldTable {
			p.Unchanged = append(p.Unchanged, f.Name)
			continue
		}
		p.Changes = append(p.Changes, PreviewChange{
			Field:      f.Name,
			Kind:       f.Kind,
			SlideIndex: f.SlideIndex,
			Old:        truncate(f.Example, 100),
			New:        truncate(renderValue(v), 100),
		})
	}
	return p
}
