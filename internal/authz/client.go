package authz

// Package authz integrates with the external authorization service that
// decides whether a requester may view a clinic's document history. The
// outcome is advisory input for the audit log; transport failures degrade to
// a deny decision rather than an error.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Decision is the authorization outcome for one access attempt.
type Decision struct {
	Allowed bool
	Reason  string
}

// Client answers whether a requester may view a clinic's history.
type Client interface {
	Check(ctx context.Context, clinicID, requestedBy string) Decision
}

type checkRequest struct {
	ClinicID    string `json:"clinicId"`
	RequestedBy string `json:"requestedBy"`
}

type checkResponse struct {
	DecisionSource string `json:"decisionSource"`
}

// httpClient calls POST {base}/authorization/check on the remote service.
type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client against the given base URL. Requests are
// traced via otelhttp and bounded by a 5 second timeout.
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   5 * time.Second,
		},
	}
}

func (c *httpClient) Check(ctx context.Context, clinicID, requestedBy string) Decision {
	body, err := json.Marshal(checkRequest{ClinicID: clinicID, RequestedBy: requestedBy})
	if err != nil {
		return Decision{Allowed: false, Reason: "authz-unreachable"}
	}

	url := fmt.Sprintf("%s/authorization/check", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Decision{Allowed: false, Reason: "authz-unreachable"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Decision{Allowed: false, Reason: "authz-unreachable"}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Decision{Allowed: true, Reason: decisionSource(resp)}
	case http.StatusForbidden:
		return Decision{Allowed: false, Reason: decisionSource(resp)}
	default:
		return Decision{Allowed: false, Reason: "unexpected-status"}
	}
}

func decisionSource(resp *http.Response) string {
	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ""
	}
	return out.DecisionSource
}

// allowAll is used when no authorization service is configured.
type allowAll struct{}

// NewAllowAll returns a client that grants every access attempt.
func NewAllowAll() Client {
	return allowAll{}
}

func (allowAll) Check(ctx context.Context, clinicID, requestedBy string) Decision {
	return Decision{Allowed: true}
}
