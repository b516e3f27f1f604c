package templater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	gslides "github.com/smorand/gslides-go"
)

// ErrNoTextToTranslate reports a presentation with no translatable text.
var ErrNoTextToTranslate = errors.New("no text to translate")

// Translator turns batches of text into the target language. source may be
// language.Und to let the service detect it.
type Translator interface {
	Translate(ctx context.Context, texts []string, target, source language.Tag) ([]string, error)
}

// GoogleTranslator is a Translator backed by the Cloud Translation API.
type GoogleTranslator struct {
	client *translate.Client
}

// NewGoogleTranslator builds a translator using the given client options,
// typically credentials.
func NewGoogleTranslator(ctx context.Context, opts ...option.ClientOption) (*GoogleTranslator, error) {
	c, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translate client: %w", err)
	}
	return &GoogleTranslator{client: c}, nil
}

func (g *GoogleTranslator) Translate(ctx context.Context, texts []string, target, source language.Tag) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	opts := &translate.Options{Format: translate.Text}
	if source != language.Und {
		opts.Source = source
	}
	translations, err := g.client.Translate(ctx, texts, target, opts)
	if err != nil {
		return nil, fmt.Errorf("translate %d texts: %w", len(texts), err)
	}
	if len(translations) != len(texts) {
		return nil, fmt.Errorf("translate: got %d results for %d texts", len(translations), len(texts))
	}
	out := make([]string, len(translations))
	for i, tr := range translations {
		out[i] = tr.Text
	}
	return out, nil
}

// Close releases the underlying client.
func (g *GoogleTranslator) Close() error { return g.client.Close() }

// TranslateReport summarizes one presentation translation.
type TranslateReport struct {
	PresentationID string
	Source, Target string
	Runs           int   // distinct source strings sent for translation
	Replaced       int   // replacement pairs applied
	Occurrences    int64 // total text occurrences changed
}

// TranslatePresentation translates every text run in place: the distinct run
// texts of the deck (slides, grouped shapes, table cells, speaker notes) go
// out in one call, and the resulting pairs come back as replaceAllText
// requests. source may be empty for language detection.
func (t *Templater) TranslatePresentation(ctx context.Context, tr Translator, presentationID, target, source string) (*TranslateReport, error) {
	targetTag, err := language.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse target language %q: %w", target, err)
	}
	sourceTag := language.Und
	if source != "" {
		sourceTag, err = language.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("parse source language %q: %w", source, err)
		}
	}

	pres, err := t.backend.GetPresentation(ctx, presentationID)
	if err != nil {
		return nil, fmt.Errorf("fetch presentation %q: %w", presentationID, err)
	}

	texts := collectRunTexts(pres)
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoTextToTranslate, presentationID)
	}

	translated, err := tr.Translate(ctx, texts, targetTag, sourceTag)
	if err != nil {
		return nil, err
	}
	if len(translated) != len(texts) {
		return nil, fmt.Errorf("translation returned %d texts for %d inputs", len(translated), len(texts))
	}

	type pair struct{ from, to string }
	pairs := make([]pair, 0, len(texts))
	for i := range texts {
		if translated[i] == texts[i] {
			continue
		}
		pairs = append(pairs, pair{from: texts[i], to: translated[i]})
	}
	// Longest source first, so a short source cannot match inside a longer
	// one that has not been replaced yet.
	sort.SliceStable(pairs, func(i, j int) bool { return len(pairs[i].from) > len(pairs[j].from) })

	report := &TranslateReport{
		PresentationID: presentationID,
		Source:         source,
		Target:         target,
		Runs:           len(texts),
		Replaced:       len(pairs),
	}
	if len(pairs) == 0 {
		return report, nil
	}

	reqs := make([]*gslides.Request, len(pairs))
	for i, p := range pairs {
		reqs[i] = replaceAllTextRequest(p.from, p.to)
	}
	responses, err := t.backend.BatchUpdateAll(ctx, presentationID, reqs)
	if err != nil {
		return nil, fmt.Errorf("apply translations to %q: %w", presentationID, err)
	}
	for _, reply := range flatReplies(responses) {
		if reply != nil && reply.ReplaceAllText != nil && reply.ReplaceAllText.OccurrencesChanged != nil {
			report.Occurrences += *reply.ReplaceAllText.OccurrencesChanged
		}
	}

	t.logger.Info("translated presentation",
		slog.String("presentation_id", presentationID),
		slog.String("target", target),
		slog.Int("runs", report.Runs),
		slog.Int64("occurrences", report.Occurrences),
	)
	return report, nil
}

// collectRunTexts gathers the distinct text run contents of the deck in
// first-seen order, trailing newlines trimmed, blanks dropped.
func collectRunTexts(p *gslides.Presentation) []string {
	seen := make(map[string]bool)
	var texts []string
	add := func(tc *gslides.TextContent) {
		if tc == nil {
			return
		}
		for _, te := range tc.TextElements {
			if te == nil || te.TextRun == nil || te.TextRun.Content == nil {
				continue
			}
			text := strings.TrimRight(*te.TextRun.Content, "\n")
			if strings.TrimSpace(text) == "" || seen[text] {
				continue
			}
			seen[text] = true
			texts = append(texts, text)
		}
	}
	visit := func(page *gslides.Page) {
		if page == nil {
			return
		}
		forEachElement(page, func(el *gslides.PageElement) {
			switch v := el.Element.(type) {
			case *gslides.Shape:
				add(v.Text)
			case *gslides.Table:
				for _, row := range v.TableRows {
					for _, cell := range row.TableCells {
						if cell != nil {
							add(cell.Text)
						}
					}
				}
			}
		})
	}
	for _, slide := range p.Slides {
		visit(slide)
		visit(slide.NotesPage())
	}
	return texts
}
