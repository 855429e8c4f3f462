package api

import (
	"context"
	"net/url"

	"github.com/achievify/goaltrack/internal/model"
)

// LoginResponse carries the credential issued by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// SignupResponse carries the confirmation message for a new account.
type SignupResponse struct {
	Message string `json:"message"`
}

// credentials is the request body for login and signup.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoalCreate is the request body for creating a goal. The id is
// assigned by the server and absent here.
type GoalCreate struct {
	Text         string      `json:"text"`
	DueDate      *model.Date `json:"dueDate"`
	Category     string      `json:"category"`
	Priority     string      `json:"priority"`
	IsMeasurable bool        `json:"isMeasurable,omitempty"`
	CurrentValue float64     `json:"currentValue,omitempty"`
	TargetValue  float64     `json:"targetValue,omitempty"`
}

// GoalUpdate is a partial update body. Nil fields are omitted so the
// server only touches what the client actually changed.
type GoalUpdate struct {
	Text         *string  `json:"text,omitempty"`
	Completed    *bool    `json:"completed,omitempty"`
	CurrentValue *float64 `json:"currentValue,omitempty"`
}

// Login authenticates the user and returns the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.Post(ctx, "/login", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account. The user still has to log in
// afterwards.
func (c *Client) Signup(ctx context.Context, email, password string) (*SignupResponse, error) {
	var resp SignupResponse
	err := c.Post(ctx, "/signup", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListGoals fetches the full goal collection for the session user.
func (c *Client) ListGoals(ctx context.Context) ([]model.Goal, error) {
	var goals []model.Goal
	if err := c.Get(ctx, "/goals", &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CreateGoal creates a goal and returns the server's entity, including
// the assigned id.
func (c *Client) CreateGoal(ctx context.Context, body GoalCreate) (*model.Goal, error) {
	var goal model.Goal
	if err := c.Post(ctx, "/goals", body, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal applies a partial update and returns the updated entity.
func (c *Client) UpdateGoal(ctx context.Context, id string, body GoalUpdate) (*model.Goal, error) {
	var goal model.Goal
	if err := c.Put(ctx, "/goals/"+url.PathEscape(id), body, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal removes a goal. The server acknowledges with no content.
func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.Delete(ctx, "/goals/"+url.PathEscape(id))
}
