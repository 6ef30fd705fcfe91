package secop2

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	// DefaultBaseURL is the SECOP II contract process data set on the
	// Colombian open data portal, in CSV form.
	DefaultBaseURL = "https://www.datos.gov.co/resource/p6dx-8zbt.csv"

	// DefaultMaxRecords caps a fetch when the caller gives no limit.
	DefaultMaxRecords = 50000

	// pageSize is the number of rows requested per upstream call. A page
	// shorter than this marks the end of the data set.
	pageSize = 10000
)

// HTTPError is a failed upstream call: a non-2xx response, or a transport
// failure (StatusCode is then zero). Calls are not retried. On transport
// failures Body stays empty; the cause, which carries the full request URL,
// only surfaces through Error for logging.
type HTTPError struct {
	StatusCode int
	Body       string
	cause      error
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return "upstream request failed: " + e.cause.Error()
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// Client fetches pages from the open data API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// Fetch pages through the data set until maxRecords rows are collected or the
// upstream runs out, and returns the concatenation in fetch order. The where
// predicate is passed through URL encoded when non-empty; an empty string
// means no filter. Row count never exceeds maxRecords. When the upstream has
// nothing at all, the returned table has zero rows and no columns.
func (c *Client) Fetch(ctx context.Context, where string, maxRecords int) (*Table, error) {
	var pages []*Table
	offset, total := 0, 0

	for total < maxRecords {
		limit := pageSize
		if rem := maxRecords - total; rem < limit {
			limit = rem
		}

		page, err := c.fetchPage(ctx, where, limit, offset)
		if err != nil {
			return nil, err
		}
		if len(page.Rows) == 0 {
			break
		}

		pages = append(pages, page)
		total += len(page.Rows)

		// A short page means the upstream is exhausted. This also ends
		// pagination when the cap truncated the final limit.
		if len(page.Rows) < pageSize {
			break
		}
		offset += pageSize
	}

	if len(pages) == 0 {
		return &Table{}, nil
	}
	table := &Table{Columns: pages[0].Columns}
	for _, page := range pages {
		table.Rows = append(table.Rows, page.Rows...)
	}
	return table, nil
}

func (c *Client) fetchPage(ctx context.Context, where string, limit, offset int) (*Table, error) {
	vals := url.Values{}
	vals.Set("$limit", strconv.Itoa(limit))
	vals.Set("$offset", strconv.Itoa(offset))
	if where != "" {
		vals.Set("$where", where)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+vals.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &HTTPError{cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &HTTPError{cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return parsePage(body)
}

// parsePage reads one CSV page, header row first. A header-only or fully
// empty body is an empty page. Bodies that are not valid UTF-8 are
// reinterpreted as Windows-1252 when possible.
func parsePage(body []byte) (*Table, error) {
	if !utf8.Valid(body) {
		if conv, err := charmap.Windows1252.NewDecoder().Bytes(body); err == nil {
			body = conv
		}
	}

	cr := csv.NewReader(bytes.NewReader(body))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}
