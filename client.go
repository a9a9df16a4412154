package solvenote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/solvenote/solvenote/internal/service"
)

// Client is a thin HTTP client for the notes API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
}

// WithToken attaches a bearer token to every request.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

type CreateNoteRequest struct {
	Title       string          `json:"title"`
	Content     json.RawMessage `json:"content,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Difficulty  string          `json:"difficulty"`
	Sources     []string        `json:"sources"`
	Independent bool            `json:"independent,omitempty"`
	ProblemURL  *string         `json:"problemUrl,omitempty"`
}

type UpdateNoteRequest struct {
	Title       *string         `json:"title,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Difficulty  *string         `json:"difficulty,omitempty"`
	Sources     []string        `json:"sources,omitempty"`
	Independent *bool           `json:"independent,omitempty"`
	ProblemURL  *string         `json:"problemUrl,omitempty"`
}

// ListNotesOptions mirror the listing query params; zero values are
// omitted and the server falls back to its defaults.
type ListNotesOptions struct {
	Tags        []string
	Sources     []string
	Mode        string
	TagsMode    string
	SourcesMode string
	Difficulty  string
	Query       string
	Sort        string
	Order       string
	Page        int
	PageSize    int
}

func (c *Client) CreateNote(ctx context.Context, req *CreateNoteRequest) (*service.Note, error) {
	var note service.Note
	if err := c.do(ctx, http.MethodPost, "/v1/notes", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*service.Note, error) {
	var note service.Note
	if err := c.do(ctx, http.MethodGet, "/v1/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) GetNoteBySlug(ctx context.Context, slug string) (*service.Note, error) {
	var note service.Note
	if err := c.do(ctx, http.MethodGet, "/v1/slugs/"+url.PathEscape(slug), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) ListNotes(ctx context.Context, opts *ListNotesOptions) (*service.NoteList, error) {
	path := "/v1/notes"
	if opts != nil {
		query := url.Values{}
		setNonEmpty(query, "tags", strings.Join(opts.Tags, ","))
		setNonEmpty(query, "sources", strings.Join(opts.Sources, ","))
		setNonEmpty(query, "mode", opts.Mode)
		setNonEmpty(query, "tagsMode", opts.TagsMode)
		setNonEmpty(query, "sourcesMode", opts.SourcesMode)
		setNonEmpty(query, "difficulty", opts.Difficulty)
		setNonEmpty(query, "q", opts.Query)
		setNonEmpty(query, "sort", opts.Sort)
		setNonEmpty(query, "order", opts.Order)
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("pageSize", strconv.Itoa(opts.PageSize))
		}
		if encoded := query.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}

	var list service.NoteList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, req *UpdateNoteRequest) (*service.Note, error) {
	var note service.Note
	if err := c.do(ctx, http.MethodPatch, "/v1/notes/"+url.PathEscape(id), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/notes/"+url.PathEscape(id), nil, nil)
}

// CheckIn records an attempt of the note. Date is optional YYYY-MM-DD;
// empty means today.
func (c *Client) CheckIn(ctx context.Context, id string, date string) (*service.Note, error) {
	var body interface{}
	if date != "" {
		body = map[string]string{"date": date}
	}

	var note service.Note
	if err := c.do(ctx, http.MethodPost, "/v1/notes/"+url.PathEscape(id)+"/checkin", body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Facets(ctx context.Context) (*service.Facets, error) {
	var facets service.Facets
	if err := c.do(ctx, http.MethodGet, "/v1/facets", nil, &facets); err != nil {
		return nil, err
	}
	return &facets, nil
}

func (c *Client) Stats(ctx context.Context) (*service.Stats, error) {
	var stats service.Stats
	if err := c.do(ctx, http.MethodGet, "/v1/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return apiError(res)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func apiError(res *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s: %s", res.Status, payload.Error)
	}
	return fmt.Errorf("unexpected status: %s", res.Status)
}

func setNonEmpty(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
