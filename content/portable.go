package content

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Block is a paragraph of rich text as stored by the content backend.
type Block struct {
	Key      string `json:"_key,omitempty" yaml:"key,omitempty"`
	Type     string `json:"_type,omitempty" yaml:"type,omitempty"`
	Style    string `json:"style,omitempty" yaml:"style,omitempty"`
	ListItem string `json:"listItem,omitempty" yaml:"listItem,omitempty"`
	Children []Span `json:"children,omitempty" yaml:"children,omitempty"`
}

// Span is a run of text inside a Block.
type Span struct {
	Key   string   `json:"_key,omitempty" yaml:"key,omitempty"`
	Type  string   `json:"_type,omitempty" yaml:"type,omitempty"`
	Text  string   `json:"text" yaml:"text"`
	Marks []string `json:"marks,omitempty" yaml:"marks,omitempty"`
}

// Text returns the concatenated span text.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Children {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

var (
	richOnce   sync.Once
	richPolicy *bluemonday.Policy
	textOnce   sync.Once
	textPolicy *bluemonday.Policy
)

func richSanitizer() *bluemonday.Policy {
	richOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "h2", "h3", "h4", "blockquote", "ul", "ol", "li", "strong", "em", "code", "br")
		richPolicy = p
	})
	return richPolicy
}

func textSanitizer() *bluemonday.Policy {
	textOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

var blockTags = map[string]string{
	"":           "p",
	"normal":     "p",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"blockquote": "blockquote",
}

var markTags = map[string]string{
	"strong": "strong",
	"em":     "em",
	"code":   "code",
}

// RenderBlocks converts rich text to HTML limited to paragraphs, headings,
// quotes, lists and inline emphasis. Non-text blocks are skipped and the
// result is passed through an allow-list sanitizer.
func RenderBlocks(blocks []Block) string {
	var sb strings.Builder
	list := ""
	closeList := func() {
		if list != "" {
			sb.WriteString("</" + list + ">")
			list = ""
		}
	}
	for _, b := range blocks {
		if b.Type != "" && b.Type != "block" {
			continue
		}
		if strings.TrimSpace(b.Text()) == "" {
			continue
		}
		if b.ListItem != "" {
			want := "ul"
			if b.ListItem == "number" {
				want = "ol"
			}
			if list != want {
				closeList()
				sb.WriteString("<" + want + ">")
				list = want
			}
			sb.WriteString("<li>")
			writeSpans(&sb, b.Children)
			sb.WriteString("</li>")
			continue
		}
		closeList()
		tag, ok := blockTags[b.Style]
		if !ok {
			tag = "p"
		}
		sb.WriteString("<" + tag + ">")
		writeSpans(&sb, b.Children)
		sb.WriteString("</" + tag + ">")
	}
	closeList()
	return richSanitizer().Sanitize(sb.String())
}

func writeSpans(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		var open, closing []string
		for _, m := range s.Marks {
			if tag, ok := markTags[m]; ok {
				open = append(open, "<"+tag+">")
				closing = append([]string{"</" + tag + ">"}, closing...)
			}
		}
		sb.WriteString(strings.Join(open, ""))
		sb.WriteString(html.EscapeString(s.Text))
		sb.WriteString(strings.Join(closing, ""))
	}
}

// Paragraphs returns the plain text of each non-empty block.
func Paragraphs(blocks []Block) []string {
	var out []string
	for _, b := range blocks {
		if t := strings.TrimSpace(b.Text()); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// cleanText strips any markup an editor pasted into a plain-text field. The
// result is unescaped again because templates escape on output.
func cleanText(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(s)))
}

func cleanAll(list []string) []string {
	out := list[:0]
	for _, s := range list {
		if c := cleanText(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func sanitize(s *Snapshot) {
	st := &s.Settings
	st.SiteName = cleanText(st.SiteName)
	st.Tagline = cleanText(st.Tagline)
	st.Location = cleanText(st.Location)
	for i := range s.Services {
		svc := &s.Services[i]
		svc.Title = cleanText(svc.Title)
		svc.Description = cleanText(svc.Description)
		svc.Features = cleanAll(svc.Features)
	}
	for i := range s.ServiceTypes {
		s.ServiceTypes[i].Title = cleanText(s.ServiceTypes[i].Title)
		s.ServiceTypes[i].Description = cleanText(s.ServiceTypes[i].Description)
	}
	for i := range s.Testimonials {
		t := &s.Testimonials[i]
		t.Name = cleanText(t.Name)
		t.DogName = cleanText(t.DogName)
		t.Quote = cleanText(t.Quote)
	}
	if s.About != nil {
		s.About.Bio = cleanText(s.About.Bio)
		s.About.Highlights = cleanAll(s.About.Highlights)
	}
	for i := range s.Terms {
		s.Terms[i].Title = cleanText(s.Terms[i].Title)
		s.Terms[i].Items = cleanAll(s.Terms[i].Items)
	}
	for i := range s.Gallery {
		s.Gallery[i].Caption = cleanText(s.Gallery[i].Caption)
	}
	for i := range s.Questions {
		q := &s.Questions[i]
		q.Text = cleanText(q.Text)
		q.Description = cleanText(q.Description)
	}
}
