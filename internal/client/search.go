// ABOUTME: Mobile-number search endpoints of the Go-Biz API
// ABOUTME: Field selection with ALL sentinel, tagged found/not-found result

package client

import (
	"context"
)

// AllFieldsSentinel is sent instead of an explicit list when every known
// field is requested.
const AllFieldsSentinel = "ALL"

// KnownFields is the closed set of data fields a search may request,
// in display order.
var KnownFields = []string{
	"name",
	"father_name",
	"address",
	"circle",
	"operator",
	"alt_numbers",
	"email",
	"id_number",
}

// SearchBilling is the charge breakdown for one search. The baseline fee
// applies to every search regardless of outcome; field charges apply only
// for fields actually returned. Balances are rendered verbatim, never
// recomputed client-side.
type SearchBilling struct {
	BaseFee      float64 `json:"base_fee"`
	FieldCharges float64 `json:"field_charges"`
	Charged      float64 `json:"charged"`
	NewBalance   float64 `json:"new_balance"`
}

// SearchResult is a tagged variant: Found carries a record plus billing,
// NotFound carries billing only. A not-found result is a normal outcome,
// not an error.
type SearchResult struct {
	Found   bool              `json:"found"`
	Record  map[string]string `json:"record,omitempty"`
	Billing SearchBilling     `json:"billing"`
}

// HistoryEntry is one past search as stored by the backend
type HistoryEntry struct {
	ID        string  `json:"id"`
	Mobile    string  `json:"mobile"`
	Found     bool    `json:"found"`
	Charged   float64 `json:"charged"`
	CreatedAt string  `json:"created_at"`
}

// searchRequest is the wire payload for a search
type searchRequest struct {
	Mobile string   `json:"mobile"`
	Fields []string `json:"fields"`
}

// FieldsPayload returns the wire field list for a selection: the exact
// subset when any known field is deselected, the ALL sentinel when every
// field is selected.
func FieldsPayload(selected []string) []string {
	if len(selected) == len(KnownFields) {
		return []string{AllFieldsSentinel}
	}
	out := make([]string, len(selected))
	copy(out, selected)
	return out
}

// Search calls POST /api/search. HTTP 402 surfaces as ErrInsufficientCredits.
func (c *Client) Search(ctx context.Context, mobile string, fields []string) (*SearchResult, error) {
	body := searchRequest{Mobile: mobile, Fields: FieldsPayload(fields)}
	var out SearchResult
	if err := c.postJSON(ctx, "/api/search", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchHistory calls GET /api/search/history
func (c *Client) SearchHistory(ctx context.Context) ([]HistoryEntry, error) {
	var out struct {
		Entries []HistoryEntry `json:"entries"`
	}
	if err := c.getJSON(ctx, "/api/search/history", &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// DeleteSearchEntry calls DELETE /api/search/history/{id}
func (c *Client) DeleteSearchEntry(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "/api/search/history/"+id, nil)
}
