// Package wolfclient reaches a remote wolf over its JSON API.
package wolfclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"wolfden/internal/app/ports"
	"wolfden/internal/domain/predator"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const DefaultTimeout = 3 * time.Second

type Client struct {
	baseURL string
	timeout time.Duration
	hc      *client.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc, err := client.NewClient(client.WithDialTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("new hertz client: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		hc:      hc,
	}, nil
}

func (c *Client) IssueUniqueID(ctx context.Context) (int, error) {
	var out struct {
		ID *int `json:"id"`
	}
	if err := c.post(ctx, "/api/wolf/unique-id", nil, &out); err != nil {
		return 0, err
	}
	if out.ID == nil {
		return 0, fmt.Errorf("%w: missing id", ports.ErrBadResponse)
	}
	return *out.ID, nil
}

func (c *Client) CheckPrey(ctx context.Context, r predator.PreyReport) (predator.Outcome, error) {
	body := map[string]int{"id": r.ID, "weight": r.Weight, "distance": r.Distance}
	return c.check(ctx, "/api/wolf/prey", body)
}

func (c *Client) CheckWater(ctx context.Context, r predator.WaterReport) (predator.Outcome, error) {
	body := map[string]int{"id": r.ID, "x": r.X, "y": r.Y, "volume": r.Volume}
	return c.check(ctx, "/api/wolf/water", body)
}

func (c *Client) check(ctx context.Context, path string, body any) (predator.Outcome, error) {
	var out struct {
		Outcome predator.Outcome `json:"outcome"`
	}
	if err := c.post(ctx, path, body, &out); err != nil {
		return "", err
	}
	if !out.Outcome.Valid() {
		return "", fmt.Errorf("%w: unknown outcome %q", ports.ErrBadResponse, out.Outcome)
	}
	return out.Outcome, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.SetMethod(consts.MethodPost)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(b)
	}

	if err := c.hc.DoTimeout(ctx, req, resp, c.timeout); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ports.ErrUnavailable, consts.MethodPost, path, err)
	}
	if status := resp.StatusCode(); status != consts.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ports.ErrBadResponse, path, status)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ports.ErrBadResponse, path, err)
	}
	return nil
}

var _ ports.WolfService = (*Client)(nil)
