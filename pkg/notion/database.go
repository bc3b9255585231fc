package notion

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// QueryAll fetches all pages from a Notion database, following cursors.
// The next page is requested while the current one is appended.
func QueryAll(ctx context.Context, c Client, dbID string, filter *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	type pageResult struct {
		resp *notionapi.DatabaseQueryResponse
		err  error
	}

	var all []notionapi.Page
	var pending <-chan pageResult
	cursor := notionapi.Cursor("")

	for {
		var resp *notionapi.DatabaseQueryResponse
		var err error
		if pending != nil {
			r := <-pending
			resp, err = r.resp, r.err
		} else {
			resp, err = c.QueryDatabase(ctx, dbID, pageRequest(filter, cursor))
		}
		if err != nil {
			return nil, eris.Wrap(err, "notion: query all page")
		}

		all = append(all, resp.Results...)
		if !resp.HasMore {
			return all, nil
		}

		ch := make(chan pageResult, 1)
		pending = ch
		next := pageRequest(filter, resp.NextCursor)
		go func() {
			r, e := c.QueryDatabase(ctx, dbID, next)
			ch <- pageResult{resp: r, err: e}
		}()
	}
}

func pageRequest(filter *notionapi.DatabaseQueryRequest, cursor notionapi.Cursor) *notionapi.DatabaseQueryRequest {
	req := &notionapi.DatabaseQueryRequest{StartCursor: cursor}
	if filter != nil {
		req.Filter = filter.Filter
		req.Sorts = filter.Sorts
		req.PageSize = filter.PageSize
	}
	return req
}

// Title returns the plain text of a title property, or "".
func Title(p notionapi.Page, name string) string {
	if tp, ok := p.Properties[name].(*notionapi.TitleProperty); ok {
		return PlainText(tp.Title)
	}
	return ""
}

// RichText returns the plain text of a rich_text property, or "".
func RichText(p notionapi.Page, name string) string {
	if rp, ok := p.Properties[name].(*notionapi.RichTextProperty); ok {
		return PlainText(rp.RichText)
	}
	return ""
}

// PlainText concatenates the plain text of rich text fragments.
func PlainText(rt []notionapi.RichText) string {
	var b strings.Builder
	for _, r := range rt {
		b.WriteString(r.PlainText)
	}
	return b.String()
}
