package templater

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	gslides "github.com/smorand/gslides-go"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// ExtractPlaceholders returns the {{name}} placeholders in text, in order,
// duplicates included.
func ExtractPlaceholders(text string) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}

// PlaceholderSite is one {{name}} occurrence and where it lives.
type PlaceholderSite struct {
	Name       string `json:"name"`
	SlideID    string `json:"slide_id"`
	SlideIndex int    `json:"slide_index"`
	ElementID  string `json:"element_id"`
	Context    string `json:"context"`
}

// FindPlaceholders scans every shape and table cell of the presentation,
// descending into groups.
func FindPlaceholders(p *gslides.Presentation) []PlaceholderSite {
	var sites []PlaceholderSite
	for i, slide := range p.Slides {
		forEachElement(slide, func(el *gslides.PageElement) {
			add := func(text string) {
				for _, name := range ExtractPlaceholders(text) {
					sites = append(sites, PlaceholderSite{
						Name:       name,
						SlideID:    slide.ObjectID,
						SlideIndex: i,
						ElementID:  el.ObjectID,
						Context:    placeholderContext(text, name),
					})
				}
			}
			switch v := el.Element.(type) {
			case *gslides.Shape:
				if t := v.Text.Text(); t != "" {
					add(t)
				}
			case *gslides.Table:
				for _, row := range v.TableRows {
					for _, cell := range row.TableCells {
						if cell == nil {
							continue
						}
						if t := cell.Text.Text(); t != "" {
							add(t)
						}
					}
				}
			}
		})
	}
	return sites
}

// FindPlaceholders fetches the presentation and scans it.
func (t *Templater) FindPlaceholders(ctx context.Context, presentationID string) ([]PlaceholderSite, error) {
	pres, err := t.backend.GetPresentation(ctx, presentationID)
	if err != nil {
		return nil, fmt.Errorf("fetch presentation %q: %w", presentationID, err)
	}
	return FindPlaceholders(pres), nil
}

// placeholderContext is a short window of text around the first occurrence,
// newlines flattened.
func placeholderContext(text, name string) string {
	needle := "{{" + name + "}}"
	idx := strings.Index(text, needle)
	if idx < 0 {
		return strings.ReplaceAll(truncate(text, 100), "\n", " ")
	}
	runes := []rune(text)
	ridx := utf8.RuneCountInString(text[:idx])
	start := max(0, ridx-40)
	end := min(len(runes), ridx+utf8.RuneCountInString(needle)+40)
	ctx := string(runes[start:end])
	if start > 0 {
		ctx = "..." + ctx
	}
	if end < len(runes) {
		ctx += "..."
	}
	return strings.ReplaceAll(ctx, "\n", " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// renderValue formats a template value for text substitution.
func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprint(x)
	}
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg"}

// isImageURL reports whether the value names an image by URL, judged by
// scheme and path extension.
func isImageURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	path := s
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.ToLower(path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// FillReport summarizes a placeholder fill.
type FillReport struct {
	Replaced  map[string]int64 // occurrences changed per text key
	Images    []string         // keys applied as image swaps
	Unmatched []string         // keys that matched nothing
}

// FillPlaceholders substitutes {{key}} occurrences across the whole
// presentation in one batch. Plain values go through replaceAllText. Values
// that look like image URLs swap images marked template:image:<key>, or
// replace a shape holding the placeholder text with the image at the shape's
// size and position.
func (t *Templater) FillPlaceholders(ctx context.Context, presentationID string, data map[string]any) (*FillReport, error) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var reqs []*gslides.Request
	textIdx := make(map[int]string)
	var imageKeys []string
	for _, k := range keys {
		value := renderValue(data[k])
		if isImageURL(value) {
			imageKeys = append(imageKeys, k)
			continue
		}
		textIdx[len(reqs)] = k
		reqs = append(reqs, replaceAllTextRequest("{{"+k+"}}", value))
	}

	report := &FillReport{Replaced: make(map[string]int64)}

	if len(imageKeys) > 0 {
		pres, err := t.backend.GetPresentation(ctx, presentationID)
		if err != nil {
			return nil, fmt.Errorf("fetch presentation %q: %w", presentationID, err)
		}
		imgReqs, applied, unmatched := imageSwapRequests(pres, imageKeys, data)
		reqs = append(reqs, imgReqs...)
		report.Images = applied
		report.Unmatched = append(report.Unmatched, unmatched...)
	}

	if len(reqs) == 0 {
		return report, nil
	}

	responses, err := t.backend.BatchUpdateAll(ctx, presentationID, reqs)
	if err != nil {
		return nil, fmt.Errorf("fill placeholders in %q: %w", presentationID, err)
	}

	replies := flatReplies(responses)
	for idx, key := range textIdx {
		var changed int64
		if idx < len(replies) && replies[idx] != nil && replies[idx].ReplaceAllText != nil &&
			replies[idx].ReplaceAllText.OccurrencesChanged != nil {
			changed = *replies[idx].ReplaceAllText.OccurrencesChanged
		}
		report.Replaced[key] = changed
		if changed == 0 {
			report.Unmatched = append(report.Unmatched, key)
		}
	}
	sort.Strings(report.Unmatched)
	return report, nil
}

func replaceAllTextRequest(find, replace string) *gslides.Request {
	return &gslides.Request{ReplaceAllText: &gslides.ReplaceAllTextRequest{
		ReplaceText: replace,
		ContainsText: &gslides.SubstringMatchCriteria{
			Text:      find,
			MatchCase: gslides.Bool(true),
		},
	}}
}

// imageSwapRequests builds the requests applying image-valued keys: swaps
// for marked image elements, create-over-and-delete for placeholder shapes.
func imageSwapRequests(pres *gslides.Presentation, keys []string, data map[string]any) (reqs []*gslides.Request, applied, unmatched []string) {
	for _, key := range keys {
		url := renderValue(data[key])
		marker := "template:image:" + key
		needle := "{{" + key + "}}"
		found := false
		for _, slide := range pres.Slides {
			forEachElement(slide, func(el *gslides.PageElement) {
				switch v := el.Element.(type) {
				case *gslides.Image:
					if el.Description != nil && *el.Description == marker {
						reqs = append(reqs, &gslides.Request{ReplaceImage: &gslides.ReplaceImageRequest{
							ImageObjectID: el.ObjectID,
							URL:           url,
						}})
						found = true
					}
				case *gslides.Shape:
					if strings.Contains(v.Text.Text(), needle) {
						reqs = append(reqs,
							&gslides.Request{CreateImage: &gslides.CreateImageRequest{
								ObjectID: gslides.GenerateObjectID("image"),
								URL:      url,
								ElementProperties: &gslides.PageElementProperties{
									PageObjectID: slide.ObjectID,
									Size:         el.Size,
									Transform:    el.Transform,
								},
							}},
							&gslides.Request{DeleteObject: &gslides.DeleteObjectRequest{ObjectID: el.ObjectID}},
						)
						found = true
					}
				}
			})
		}
		if found {
			applied = append(applied, key)
		} else {
			unmatched = append(unmatched, key)
		}
	}
	return reqs, applied, unmatched
}
