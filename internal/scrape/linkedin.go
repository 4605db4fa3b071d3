package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/fetch"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

// Selectors for the public LinkedIn job page layout. Title, company and
// description are located independently so a partial page still yields
// whatever fields it carries.
const (
	linkedinTitleSelector       = "h1.top-card-layout__title"
	linkedinCompanySelector     = "a.topcard__org-name-link, span.topcard__flavor"
	linkedinDescriptionSection  = "section.core-section-container.description"
	linkedinDescriptionTextNode = "div.description__text"
)

// LinkedIn extracts fields from public LinkedIn job posting pages.
type LinkedIn struct {
	opts *fetch.Options
	log  *zap.Logger
}

// NewLinkedIn creates a LinkedIn extraction strategy. opts may be nil to use
// the fetch defaults (10s timeout, browser-like user agent).
func NewLinkedIn(opts *fetch.Options, log *zap.Logger) *LinkedIn {
	if log == nil {
		log = zap.NewNop()
	}
	return &LinkedIn{opts: opts, log: log}
}

// Extract fetches the posting page and reads title, company and description.
// Non-LinkedIn URLs return empty fields immediately. Fetch or parse failures
// degrade to empty fields; they are logged, never raised.
func (l *LinkedIn) Extract(ctx context.Context, url string) (fields types.JobFields) {
	if fetch.DetectSource(url) != fetch.SourceLinkedIn {
		return types.JobFields{}
	}

	defer func() {
		if r := recover(); r != nil {
			l.log.Warn("posting page parse panicked", zap.String("url", url), zap.Any("panic", r))
			fields = types.JobFields{}
		}
	}()

	result, err := fetch.URL(ctx, url, l.opts)
	if err != nil {
		status := 0
		if result != nil {
			status = result.StatusCode
		}
		l.log.Warn("posting page fetch failed",
			zap.String("url", url), zap.Int("status", status), zap.Error(err))
		return types.JobFields{}
	}

	return l.parse(url, result.HTML)
}

// parse reads the three posting fields out of a fetched page. Each field is
// extracted independently; absence of one does not block the others.
func (l *LinkedIn) parse(url, pageHTML string) (fields types.JobFields) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		l.log.Warn("posting page parse failed", zap.String("url", url), zap.Error(err))
		return types.JobFields{}
	}

	if title := doc.Find(linkedinTitleSelector).First(); title.Length() > 0 {
		fields.Title = types.TruncateTitle(title.Text())
	}

	if org := doc.Find(linkedinCompanySelector).First(); org.Length() > 0 {
		fields.Company = strings.Join(strings.Fields(org.Text()), " ")
	}

	if section := doc.Find(linkedinDescriptionSection).First(); section.Length() > 0 {
		container := section
		if inner := section.Find(linkedinDescriptionTextNode).First(); inner.Length() > 0 {
			container = inner
		}
		fields.Description = textWithLineBreaks(container)
	}

	return fields
}

// textWithLineBreaks extracts the text of a selection with explicit line
// breaks at block-element and <br> boundaries, drops empty lines and rejoins
// with single newlines. goquery's Text() would glue list items together.
func textWithLineBreaks(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		writeNodeText(node, &sb)
	}

	lines := strings.Split(sb.String(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"section": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "tr": true,
}

func writeNodeText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
	case html.ElementNode:
		if n.Data == "br" {
			sb.WriteString("\n")
			return
		}
		if blockTags[n.Data] {
			sb.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(c, sb)
	}
	if n.Type == html.ElementNode && blockTags[n.Data] {
		sb.WriteString("\n")
	}
}
