package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config represents the configuration for the VolunteerHub client
type Config struct {
	// BaseURL is the base URL of the VolunteerHub API
	BaseURL string
	// Token is the bearer token sent with every request
	Token string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8080",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the VolunteerHub API client
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new VolunteerHub client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// User represents a platform account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Auth0Sub  string    `json:"auth0_sub,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnsureUser provisions the account for the calling token's subject.
// Repeated calls return the same user.
func (c *Client) EnsureUser(ctx context.Context) (*User, error) {
	endpoint := fmt.Sprintf("%s/api/v1/users/", c.config.BaseURL)
	var resp User
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user for the calling token's subject
func (c *Client) Me(ctx context.Context) (*User, error) {
	endpoint := fmt.Sprintf("%s/api/v1/users/me", c.config.BaseURL)
	var resp User
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUser retrieves a user by ID
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/users/%s", c.config.BaseURL, id)
	var resp User
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Location represents a physical event location. It is the request
// shape for event writes; event responses carry the flattened
// location_* fields instead.
type Location struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Event represents a volunteer event
type Event struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	LocationName       string     `json:"location_name,omitempty"`
	LocationAddress    string     `json:"location_address,omitempty"`
	LocationCity       string     `json:"location_city,omitempty"`
	LocationState      string     `json:"location_state,omitempty"`
	LocationPostalCode string     `json:"location_postal_code,omitempty"`
	StartsAt           time.Time  `json:"starts_at"`
	EndsAt             *time.Time `json:"ends_at,omitempty"`
	Capacity           *int       `json:"capacity,omitempty"`
	RequiredSkills     []string   `json:"required_skills"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CreateEventRequest represents an event creation request
type CreateEventRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Location       Location   `json:"location"`
	StartsAt       time.Time  `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	Capacity       *int       `json:"capacity,omitempty"`
	RequiredSkills []string   `json:"required_skills"`
}

// CreateEvent creates a new draft event
func (c *Client) CreateEvent(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Title == "" || req.Location.Name == "" {
		return nil, errors.New("title and location name are required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/events/", c.config.BaseURL)
	var resp Event
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEvent retrieves an event by ID
func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/events/%s", c.config.BaseURL, id)
	var resp Event
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListEventsResponse represents a page of events
type ListEventsResponse struct {
	Events []Event `json:"events"`
	Total  int64   `json:"total"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// ListEventsOptions filters the event listing
type ListEventsOptions struct {
	Status string
	City   string
	Offset int
	Limit  int
}

// ListEvents lists events with optional filtering and pagination
func (c *Client) ListEvents(ctx context.Context, opts *ListEventsOptions) (*ListEventsResponse, error) {
	q := url.Values{}
	if opts != nil {
		if opts.Status != "" {
			q.Set("status", opts.Status)
		}
		if opts.City != "" {
			q.Set("city", opts.City)
		}
		if opts.Offset > 0 {
			q.Set("offset", fmt.Sprintf("%d", opts.Offset))
		}
		if opts.Limit > 0 {
			q.Set("limit", fmt.Sprintf("%d", opts.Limit))
		}
	}

	endpoint := fmt.Sprintf("%s/api/v1/events/?%s", c.config.BaseURL, q.Encode())
	var resp ListEventsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUpcomingEvents lists published events that have not started yet
func (c *Client) ListUpcomingEvents(ctx context.Context) ([]Event, error) {
	endpoint := fmt.Sprintf("%s/api/v1/events/upcoming", c.config.BaseURL)
	var resp []Event
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// PublishEvent moves a draft event to published
func (c *Client) PublishEvent(ctx context.Context, id string) (*Event, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/events/%s/publish", c.config.BaseURL, id)
	var resp Event
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Opportunity represents a volunteer role within an event
type Opportunity struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	RequiredSkills []string  `json:"required_skills"`
	MinHours       *float64  `json:"min_hours,omitempty"`
	MaxSlots       *int      `json:"max_slots,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateOpportunityRequest represents an opportunity creation request
type CreateOpportunityRequest struct {
	EventID        string   `json:"event_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	RequiredSkills []string `json:"required_skills"`
	MinHours       *float64 `json:"min_hours,omitempty"`
	MaxSlots       *int     `json:"max_slots,omitempty"`
}

// CreateOpportunity creates a new opportunity under an event
func (c *Client) CreateOpportunity(ctx context.Context, req *CreateOpportunityRequest) (*Opportunity, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.EventID == "" || req.Title == "" {
		return nil, errors.New("event_id and title are required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/opportunities/", c.config.BaseURL)
	var resp Opportunity
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOpportunity retrieves an opportunity by ID
func (c *Client) GetOpportunity(ctx context.Context, id string) (*Opportunity, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/opportunities/%s", c.config.BaseURL, id)
	var resp Opportunity
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MatchScore breaks a match score into its weighted components
type MatchScore struct {
	Total        float64 `json:"total_score"`
	SkillMatch   float64 `json:"skill_match_score"`
	Availability float64 `json:"availability_score"`
	Preference   float64 `json:"preference_score"`
	Distance     float64 `json:"distance_score"`
}

// MatchRequest represents a volunteer's application for an opportunity
type MatchRequest struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	OpportunityID string    `json:"opportunity_id"`
	Status        string    `json:"status"`
	Score         *float64  `json:"score,omitempty"`
	RequestedAt   time.Time `json:"requested_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Match represents a confirmed volunteer assignment
type Match struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	OpportunityID string    `json:"opportunity_id"`
	Status        string    `json:"status"`
	Score         *float64  `json:"score,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateMatchRequest applies a user to an opportunity
func (c *Client) CreateMatchRequest(ctx context.Context, userID, opportunityID string) (*MatchRequest, error) {
	if userID == "" || opportunityID == "" {
		return nil, errors.New("user_id and opportunity_id are required")
	}

	req := map[string]string{
		"user_id":        userID,
		"opportunity_id": opportunityID,
	}

	endpoint := fmt.Sprintf("%s/api/v1/match-requests/", c.config.BaseURL)
	var resp MatchRequest
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ApproveMatchRequest approves a pending match request and returns the
// resulting match
func (c *Client) ApproveMatchRequest(ctx context.Context, id string) (*Match, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/match-requests/%s/approve", c.config.BaseURL, id)
	var resp Match
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RejectMatchRequest rejects a pending match request
func (c *Client) RejectMatchRequest(ctx context.Context, id string) (*MatchRequest, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/match-requests/%s/reject", c.config.BaseURL, id)
	var resp MatchRequest
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OpportunityMatch pairs a candidate opportunity with its score
type OpportunityMatch struct {
	Opportunity Opportunity `json:"opportunity"`
	Score       MatchScore  `json:"score"`
}

// FindOpportunities ranks opportunities for a volunteer. Results below
// minScore are dropped; pass 0 to use the server default.
func (c *Client) FindOpportunities(ctx context.Context, userID string, minScore float64) ([]OpportunityMatch, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/volunteers/%s/opportunities", c.config.BaseURL, userID)
	if minScore > 0 {
		endpoint = fmt.Sprintf("%s?min_score=%g", endpoint, minScore)
	}

	var resp []OpportunityMatch
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListMatches lists the confirmed matches for a volunteer
func (c *Client) ListMatches(ctx context.Context, userID string) ([]Match, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/volunteers/%s/matches", c.config.BaseURL, userID)
	var resp []Match
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Notification represents a delivered or pending notification
type Notification struct {
	ID          string     `json:"id"`
	RecipientID string     `json:"recipient_id"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Type        string     `json:"type"`
	Channel     string     `json:"channel"`
	Status      string     `json:"status"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ListNotifications lists a user's notifications, newest first
func (c *Client) ListNotifications(ctx context.Context, userID string) ([]Notification, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/volunteers/%s/notifications", c.config.BaseURL, userID)
	var resp []Notification
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// MarkNotificationRead marks an in-app notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/notifications/%s/read", c.config.BaseURL, id)
	var resp struct {
		Ok bool `json:"ok"`
	}
	return c.post(ctx, endpoint, struct{}{}, &resp)
}

// UnreadCount returns the number of unread in-app notifications
func (c *Client) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, errors.New("user_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/volunteers/%s/notifications/unread-count", c.config.BaseURL, userID)
	var resp struct {
		UnreadCount int64 `json:"unread_count"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

// VolunteerStatistics summarizes a volunteer's history
type VolunteerStatistics struct {
	TotalHours           float64    `json:"total_hours"`
	TotalEvents          int        `json:"total_events"`
	UniqueRoles          int        `json:"unique_roles"`
	FirstVolunteerDate   *time.Time `json:"first_volunteer_date"`
	LastVolunteerDate    *time.Time `json:"last_volunteer_date"`
	AverageHoursPerEvent float64    `json:"average_hours_per_event"`
	MostCommonRole       string     `json:"most_common_role,omitempty"`
}

// VolunteerStatistics returns the aggregate statistics for a volunteer
func (c *Client) VolunteerStatistics(ctx context.Context, userID string) (*VolunteerStatistics, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/volunteers/%s/history/statistics", c.config.BaseURL, userID)
	var resp VolunteerStatistics
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadVolunteerHistoryReport fetches the volunteer history CSV
// export covering the trailing number of days
func (c *Client) DownloadVolunteerHistoryReport(ctx context.Context, days int) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/api/v1/reports/volunteer-history", c.config.BaseURL)
	if days > 0 {
		endpoint = fmt.Sprintf("%s?days=%d", endpoint, days)
	}
	return c.getRaw(ctx, endpoint)
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"error"`
	Details    []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// post performs a POST request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Marshal request to JSON
	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	if err := checkStatus(httpResp); err != nil {
		return err
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// get performs a GET request to the specified endpoint and unmarshals the response into the specified response object
func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	c.authorize(httpReq)

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	if err := checkStatus(httpResp); err != nil {
		return err
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// getRaw performs a GET request and returns the raw response body
func (c *Client) getRaw(ctx context.Context, endpoint string) ([]byte, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(httpReq)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	if err := checkStatus(httpResp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// authorize attaches the bearer token when one is configured
func (c *Client) authorize(req *http.Request) {
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
}

// checkStatus converts a non-success response into an APIError
func checkStatus(httpResp *http.Response) error {
	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
		// If we can't decode the error, create a generic one
		return &APIError{
			StatusCode: httpResp.StatusCode,
			Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
		}
	}

	apiErr.StatusCode = httpResp.StatusCode
	return &apiErr
}
