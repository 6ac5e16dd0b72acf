package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	watsonVersion        = "2018-02-16"
	defaultWorkspaceName = "shopbot"
)

// WatsonOptions configure a WatsonClient.
type WatsonOptions struct {
	URL      string
	Username string
	Password string
	// WorkspaceID pins a workspace; ResolveWorkspace verifies it exists.
	WorkspaceID string
	// WorkspaceName is used to find the workspace when no ID is pinned.
	WorkspaceName string
}

// WatsonClient talks to a Watson Assistant style workspace over its
// versioned REST API.
type WatsonClient struct {
	opts        WatsonOptions
	workspaceID string
	httpClient  *http.Client
}

// NewWatsonClient creates a client. Call ResolveWorkspace before the
// first Message unless opts.WorkspaceID is known to be valid.
func NewWatsonClient(opts WatsonOptions) *WatsonClient {
	opts.URL = strings.TrimSuffix(opts.URL, "/")
	if opts.WorkspaceName == "" {
		opts.WorkspaceName = defaultWorkspaceName
	}
	return &WatsonClient{
		opts:        opts,
		workspaceID: opts.WorkspaceID,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type watsonWorkspace struct {
	Name        string `json:"name"`
	WorkspaceID string `json:"workspace_id"`
}

// ResolveWorkspace verifies the pinned workspace ID against the service,
// or finds the workspace by name when no ID is pinned.
func (c *WatsonClient) ResolveWorkspace(ctx context.Context) error {
	var list struct {
		Workspaces []watsonWorkspace `json:"workspaces"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/workspaces", nil, &list); err != nil {
		return fmt.Errorf("list workspaces: %w", err)
	}

	if c.opts.WorkspaceID != "" {
		for _, ws := range list.Workspaces {
			if ws.WorkspaceID == c.opts.WorkspaceID {
				c.workspaceID = ws.WorkspaceID
				return nil
			}
		}
		return fmt.Errorf("workspace %s is configured but does not exist", c.opts.WorkspaceID)
	}

	for _, ws := range list.Workspaces {
		if ws.Name == c.opts.WorkspaceName {
			c.workspaceID = ws.WorkspaceID
			log.Printf("assistant: found workspace %s by name %q", ws.WorkspaceID, ws.Name)
			return nil
		}
	}
	return fmt.Errorf("no workspace named %q found", c.opts.WorkspaceName)
}

func (c *WatsonClient) Message(ctx context.Context, text string, convContext map[string]any) (*Response, error) {
	if c.workspaceID == "" {
		return nil, fmt.Errorf("workspace not resolved")
	}

	body := map[string]any{
		"input": map[string]any{"text": text},
	}
	if convContext != nil {
		body["context"] = convContext
	}

	var out struct {
		Context map[string]any `json:"context"`
		Output  struct {
			Text []string `json:"text"`
		} `json:"output"`
	}
	path := fmt.Sprintf("/v1/workspaces/%s/message", c.workspaceID)
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	return &Response{
		Context: out.Context,
		Output:  out.Output.Text,
	}, nil
}

// do issues one versioned API call with basic auth and decodes the JSON
// response into out.
func (c *WatsonClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := fmt.Sprintf("%s%s?version=%s", c.opts.URL, path, watsonVersion)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.Username != "" {
		req.SetBasicAuth(c.opts.Username, c.opts.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("assistant returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
