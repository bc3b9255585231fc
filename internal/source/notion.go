package source

import (
	"context"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/influencer-matcher/internal/model"
	"github.com/sells-group/influencer-matcher/pkg/notion"
)

// NotionSource is the Source value of records read from Notion.
const NotionSource = "notion"

// Testimonial database properties.
const (
	propName         = "Name"
	propInstagram    = "Instagram"
	propProduct      = "Produkt"
	propHint         = "Hinweis"
	propExtraInfo    = "Extra Info"
	propMatcherNotes = "Matcher-Notiz"
)

// FromNotion reads every page of the testimonial database as a raw record.
// The name is the page title plus the Instagram handle; the text is the
// product and note properties joined.
func FromNotion(ctx context.Context, client notion.Client, dbID string) ([]model.RawRecord, error) {
	pages, err := notion.QueryAll(ctx, client, dbID, nil)
	if err != nil {
		return nil, eris.Wrap(err, "source: load notion")
	}

	records := make([]model.RawRecord, 0, len(pages))
	for i, p := range pages {
		name := strings.TrimSpace(notion.Title(p, propName))
		if h := instagramHandle(notion.RichText(p, propInstagram)); h != "" {
			name = strings.TrimSpace(name + " @" + h)
		}

		var parts []string
		for _, prop := range []string{propProduct, propHint, propExtraInfo, propMatcherNotes} {
			if v := strings.TrimSpace(notion.RichText(p, prop)); v != "" {
				parts = append(parts, v)
			}
		}

		records = append(records, model.RawRecord{
			Name:   name,
			Text:   strings.Join(parts, " "),
			Source: NotionSource,
			Row:    i + 1,
		})
	}
	return records, nil
}

// instagramHandle accepts "@handle", "handle" or a profile URL.
func instagramHandle(v string) string {
	v = strings.TrimSpace(v)
	if strings.Contains(v, "instagram.com") {
		raw := v
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		if u, err := url.Parse(raw); err == nil {
			v = strings.Trim(u.Path, "/")
			if i := strings.IndexByte(v, '/'); i >= 0 {
				v = v[:i]
			}
		}
	}
	v = strings.TrimPrefix(v, "@")
	if strings.ContainsAny(v, " \t\n") {
		return ""
	}
	return v
}
