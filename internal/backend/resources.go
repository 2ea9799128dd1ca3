package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ListOptions bounds list calls; the backend enforces its own ceiling.
type ListOptions struct {
	Limit  int
	Cursor string
}

func (o ListOptions) query() string {
	values := url.Values{}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Cursor != "" {
		values.Set("cursor", o.Cursor)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

type listResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Documents -----------------------------------------------------------------

func (c *Client) ListDocuments(ctx context.Context, opts ListOptions) ([]Document, string, error) {
	var resp listResponse[Document]
	if err := c.do(ctx, http.MethodGet, "/internal/v1/documents"+opts.query(), nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Items, resp.NextCursor, nil
}

func (c *Client) GetDocument(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := c.do(ctx, http.MethodGet, "/internal/v1/documents/"+url.PathEscape(id), nil, &doc)
	return doc, err
}

// CreateDocumentInput registers uploaded-document metadata; the binary
// itself is streamed to backend storage by the upload flow.
type CreateDocumentInput struct {
	Title  string `json:"title"`
	Kind   string `json:"kind,omitempty"`
	CaseID string `json:"case_id,omitempty"`
}

func (c *Client) CreateDocument(ctx context.Context, in CreateDocumentInput) (Document, error) {
	var doc Document
	err := c.do(ctx, http.MethodPost, "/internal/v1/documents", in, &doc)
	return doc, err
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/internal/v1/documents/"+url.PathEscape(id), nil, nil)
}

type shareDocumentRequest struct {
	Email string `json:"email"`
}

func (c *Client) ShareDocument(ctx context.Context, id, email string) error {
	return c.do(ctx, http.MethodPost, "/internal/v1/documents/"+url.PathEscape(id)+"/share",
		shareDocumentRequest{Email: email}, nil)
}

// Cases ---------------------------------------------------------------------

func (c *Client) ListCases(ctx context.Context, opts ListOptions) ([]Case, string, error) {
	var resp listResponse[Case]
	if err := c.do(ctx, http.MethodGet, "/internal/v1/cases"+opts.query(), nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Items, resp.NextCursor, nil
}

func (c *Client) GetCase(ctx context.Context, id string) (Case, error) {
	var cs Case
	err := c.do(ctx, http.MethodGet, "/internal/v1/cases/"+url.PathEscape(id), nil, &cs)
	return cs, err
}

type CaseInput struct {
	Number string `json:"number,omitempty"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
}

func (c *Client) CreateCase(ctx context.Context, in CaseInput) (Case, error) {
	var cs Case
	err := c.do(ctx, http.MethodPost, "/internal/v1/cases", in, &cs)
	return cs, err
}

func (c *Client) UpdateCase(ctx context.Context, id string, in CaseInput) (Case, error) {
	var cs Case
	err := c.do(ctx, http.MethodPut, "/internal/v1/cases/"+url.PathEscape(id), in, &cs)
	return cs, err
}

// Contracts -----------------------------------------------------------------

func (c *Client) ListContracts(ctx context.Context, opts ListOptions) ([]Contract, string, error) {
	var resp listResponse[Contract]
	if err := c.do(ctx, http.MethodGet, "/internal/v1/contracts"+opts.query(), nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Items, resp.NextCursor, nil
}

func (c *Client) GetContract(ctx context.Context, id string) (Contract, error) {
	var ct Contract
	err := c.do(ctx, http.MethodGet, "/internal/v1/contracts/"+url.PathEscape(id), nil, &ct)
	return ct, err
}

type ContractInput struct {
	Title        string     `json:"title"`
	Counterparty string     `json:"counterparty,omitempty"`
	Status       string     `json:"status,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

func (c *Client) CreateContract(ctx context.Context, in ContractInput) (Contract, error) {
	var ct Contract
	err := c.do(ctx, http.MethodPost, "/internal/v1/contracts", in, &ct)
	return ct, err
}

func (c *Client) UpdateContract(ctx context.Context, id string, in ContractInput) (Contract, error) {
	var ct Contract
	err := c.do(ctx, http.MethodPut, "/internal/v1/contracts/"+url.PathEscape(id), in, &ct)
	return ct, err
}

func (c *Client) DeleteContract(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/internal/v1/contracts/"+url.PathEscape(id), nil, nil)
}

// Clients (CRM) -------------------------------------------------------------

func (c *Client) ListClients(ctx context.Context, opts ListOptions) ([]ClientRecord, string, error) {
	var resp listResponse[ClientRecord]
	if err := c.do(ctx, http.MethodGet, "/internal/v1/clients"+opts.query(), nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Items, resp.NextCursor, nil
}

type ClientInput struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (c *Client) CreateClient(ctx context.Context, in ClientInput) (ClientRecord, error) {
	var rec ClientRecord
	err := c.do(ctx, http.MethodPost, "/internal/v1/clients", in, &rec)
	return rec, err
}

func (c *Client) UpdateClient(ctx context.Context, id string, in ClientInput) (ClientRecord, error) {
	var rec ClientRecord
	err := c.do(ctx, http.MethodPut, "/internal/v1/clients/"+url.PathEscape(id), in, &rec)
	return rec, err
}

// Calendar ------------------------------------------------------------------

func (c *Client) ListCalendarEvents(ctx context.Context, opts ListOptions) ([]CalendarEvent, string, error) {
	var resp listResponse[CalendarEvent]
	if err := c.do(ctx, http.MethodGet, "/internal/v1/calendar/events"+opts.query(), nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Items, resp.NextCursor, nil
}

type CalendarEventInput struct {
	Title    string    `json:"title"`
	CaseID   string    `json:"case_id,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at,omitempty"`
	Location string    `json:"location,omitempty"`
}

func (c *Client) CreateCalendarEvent(ctx context.Context, in CalendarEventInput) (CalendarEvent, error) {
	var ev CalendarEvent
	err := c.do(ctx, http.MethodPost, "/internal/v1/calendar/events", in, &ev)
	return ev, err
}

func (c *Client) DeleteCalendarEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/internal/v1/calendar/events/"+url.PathEscape(id), nil, nil)
}
