package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/dto"
	"github.com/lifewood/careers-api/internal/model"
	"github.com/tidwall/gjson"
)

// RemoteStore is the single source of truth the engine reconciles
// against. The engine's cache must always be reconcilable back to it.
type RemoteStore interface {
	ListApplications(ctx context.Context) ([]model.Application, error)
	UpdateApplication(ctx context.Context, id uuid.UUID, req dto.UpdateApplicationRequest) (*model.Application, error)
	BulkDeleteApplications(ctx context.Context, ids []uuid.UUID) error
	CreateApplication(ctx context.Context, req dto.CreateApplicationRequest) (uuid.UUID, error)
	ResumeURL(ctx context.Context, key string) (string, error)
}

// APIClient implements RemoteStore over the careers REST API.
type APIClient struct {
	http *resty.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		http: resty.New().SetBaseURL(baseURL),
	}
}

// remoteError extracts the server's {"error": ...} message, falling back
// to the HTTP status line.
func remoteError(resp *resty.Response) error {
	if msg := gjson.GetBytes(resp.Body(), "error").String(); msg != "" {
		return fmt.Errorf("remote store: %s", msg)
	}
	return fmt.Errorf("remote store: %s", resp.Status())
}

func (c *APIClient) ListApplications(ctx context.Context) ([]model.Application, error) {
	var out struct {
		Applications []model.Application `json:"applications"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"page": "1", "limit": "1000"}).
		SetResult(&out).
		Get("/api/applications")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, remoteError(resp)
	}
	return out.Applications, nil
}

func (c *APIClient) UpdateApplication(ctx context.Context, id uuid.UUID, req dto.UpdateApplicationRequest) (*model.Application, error) {
	var out model.Application
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Put("/api/applications/" + id.String())
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, remoteError(resp)
	}
	return &out, nil
}

func (c *APIClient) BulkDeleteApplications(ctx context.Context, ids []uuid.UUID) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.BulkDeleteRequest{IDs: ids}).
		Post("/api/applications/bulk-delete")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return remoteError(resp)
	}
	return nil
}

func (c *APIClient) CreateApplication(ctx context.Context, req dto.CreateApplicationRequest) (uuid.UUID, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/applications")
	if err != nil {
		return uuid.Nil, err
	}
	if resp.IsError() {
		return uuid.Nil, remoteError(resp)
	}
	raw := gjson.GetBytes(resp.Body(), "applicationId").String()
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("remote store: bad application id %q", raw)
	}
	return id, nil
}

func (c *APIClient) ResumeURL(ctx context.Context, key string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", key).
		Get("/api/resumes/url")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", remoteError(resp)
	}
	return gjson.GetBytes(resp.Body(), "url").String(), nil
}

// Login authenticates an admin against the API. Not part of RemoteStore;
// the engine never needs it, only the dashboard shell does.
func (c *APIClient) Login(ctx context.Context, email, password string) (*model.AdminUser, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.LoginRequest{Email: email, Password: password}).
		Post("/api/admin/auth")
	if err != nil {
		return nil, err
	}
	body := resp.Body()
	if !gjson.GetBytes(body, "success").Bool() {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("login failed: %s", msg)
	}
	var out struct {
		Admin model.AdminUser `json:"admin"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out.Admin, nil
}
