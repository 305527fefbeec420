package client

// http_client.go talks to the yamdb REST API on behalf of the CLI commands.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"yamdb/internal/microservices/http-api/dto"
)

// HTTPClient is a thin wrapper around the /api/v1 endpoints.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Status     string
	// Body is the decoded error payload; nil when it was not JSON.
	Body map[string]any
}

func (e *APIError) Error() string {
	if detail, ok := e.Body["detail"]; ok {
		return fmt.Sprintf("%s: %v", e.Status, detail)
	}
	if len(e.Body) == 0 {
		return e.Status
	}
	keys := make([]string, 0, len(e.Body))
	for k := range e.Body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, e.Body[k]))
	}
	return fmt.Sprintf("%s: %s", e.Status, strings.Join(parts, "; "))
}

// Page selects a window of a paginated listing; zero values use the server defaults.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(q url.Values) {
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
}

// TitleFilter mirrors the query parameters of the title listing.
type TitleFilter struct {
	Name     string
	Year     int
	Genre    string
	Category string
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends the request and decodes the answer into out when it is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
		// a non-JSON body just leaves Body empty
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Auth

// RequestCode asks the server to mail a confirmation code to email.
func (c *HTTPClient) RequestCode(ctx context.Context, email string) (*dto.RegisterResponse, error) {
	var result dto.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/email/", nil, dto.RegisterRequest{Email: email}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ObtainToken exchanges a confirmation code for an access token.
func (c *HTTPClient) ObtainToken(ctx context.Context, email, code string) (string, error) {
	var result dto.TokenResponse
	req := dto.TokenRequest{Email: email, ConfirmationCode: code}
	if err := c.do(ctx, http.MethodPost, "/token/", nil, req, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// Users

func (c *HTTPClient) Me(ctx context.Context) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/me/", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateMe(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/users/me/", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, search string, page Page) (*dto.PaginatedResponse[dto.UserResponse], error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	page.apply(q)
	var result dto.PaginatedResponse[dto.UserResponse]
	if err := c.do(ctx, http.MethodGet, "/users/", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, username string) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username)+"/", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/users/", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, username string, req dto.UserRequest) (*dto.UserResponse, error) {
	var result dto.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(username)+"/", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(username)+"/", nil, nil, nil)
}

// Categories and genres; kind is "categories" or "genres".

func (c *HTTPClient) ListSlugs(ctx context.Context, kind, search string, page Page) (*dto.PaginatedResponse[dto.SlugResponse], error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	page.apply(q)
	var result dto.PaginatedResponse[dto.SlugResponse]
	if err := c.do(ctx, http.MethodGet, "/"+kind+"/", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateSlug(ctx context.Context, kind string, req dto.SlugRequest) (*dto.SlugResponse, error) {
	var result dto.SlugResponse
	if err := c.do(ctx, http.MethodPost, "/"+kind+"/", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteSlug(ctx context.Context, kind, slug string) error {
	return c.do(ctx, http.MethodDelete, "/"+kind+"/"+url.PathEscape(slug)+"/", nil, nil, nil)
}

// Titles

func (c *HTTPClient) ListTitles(ctx context.Context, filter TitleFilter, page Page) (*dto.PaginatedResponse[dto.TitleResponse], error) {
	q := url.Values{}
	if filter.Name != "" {
		q.Set("name", filter.Name)
	}
	if filter.Year != 0 {
		q.Set("year", strconv.Itoa(filter.Year))
	}
	if filter.Genre != "" {
		q.Set("genre", filter.Genre)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	page.apply(q)
	var result dto.PaginatedResponse[dto.TitleResponse]
	if err := c.do(ctx, http.MethodGet, "/titles/", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetTitle(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	var result dto.TitleResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/titles/%d/", id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateTitle(ctx context.Context, req dto.TitleRequest) (*dto.TitleResponse, error) {
	var result dto.TitleResponse
	if err := c.do(ctx, http.MethodPost, "/titles/", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateTitle(ctx context.Context, id int64, req dto.TitleRequest) (*dto.TitleResponse, error) {
	var result dto.TitleResponse
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/titles/%d/", id), nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteTitle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/titles/%d/", id), nil, nil, nil)
}

// Reviews

func reviewsPath(titleID int64) string {
	return fmt.Sprintf("/titles/%d/reviews/", titleID)
}

func (c *HTTPClient) ListReviews(ctx context.Context, titleID int64, page Page) (*dto.PaginatedResponse[dto.ReviewResponse], error) {
	q := url.Values{}
	page.apply(q)
	var result dto.PaginatedResponse[dto.ReviewResponse]
	if err := c.do(ctx, http.MethodGet, reviewsPath(titleID), q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetReview(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s%d/", reviewsPath(titleID), reviewID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, titleID int64, req dto.ReviewRequest) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	if err := c.do(ctx, http.MethodPost, reviewsPath(titleID), nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateReview(ctx context.Context, titleID, reviewID int64, req dto.ReviewRequest) (*dto.ReviewResponse, error) {
	var result dto.ReviewResponse
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s%d/", reviewsPath(titleID), reviewID), nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, titleID, reviewID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", reviewsPath(titleID), reviewID), nil, nil, nil)
}

// Comments

func commentsPath(titleID, reviewID int64) string {
	return fmt.Sprintf("/titles/%d/reviews/%d/comments/", titleID, reviewID)
}

func (c *HTTPClient) ListComments(ctx context.Context, titleID, reviewID int64, page Page) (*dto.PaginatedResponse[dto.CommentResponse], error) {
	q := url.Values{}
	page.apply(q)
	var result dto.PaginatedResponse[dto.CommentResponse]
	if err := c.do(ctx, http.MethodGet, commentsPath(titleID, reviewID), q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	var result dto.CommentResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s%d/", commentsPath(titleID, reviewID), commentID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, titleID, reviewID int64, text string) (*dto.CommentResponse, error) {
	var result dto.CommentResponse
	if err := c.do(ctx, http.MethodPost, commentsPath(titleID, reviewID), nil, dto.CommentRequest{Text: &text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateComment(ctx context.Context, titleID, reviewID, commentID int64, text string) (*dto.CommentResponse, error) {
	var result dto.CommentResponse
	path := fmt.Sprintf("%s%d/", commentsPath(titleID, reviewID), commentID)
	if err := c.do(ctx, http.MethodPatch, path, nil, dto.CommentRequest{Text: &text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, titleID, reviewID, commentID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", commentsPath(titleID, reviewID), commentID), nil, nil, nil)
}
