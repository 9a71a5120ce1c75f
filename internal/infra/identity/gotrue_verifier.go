package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/adapter"
)

var _ adapter.IdentityVerifier = (*GoTrueVerifier)(nil)

// GoTrueVerifier resolves bearer tokens with a server-side call to the
// identity provider's /auth/v1/user endpoint. The service key authorizes
// this backend to the provider and is never shipped to clients.
type GoTrueVerifier struct {
	projectURL string
	serviceKey string
	client     *http.Client
}

func NewGoTrueVerifier(projectURL, serviceKey string) (*GoTrueVerifier, error) {
	if projectURL == "" || serviceKey == "" {
		return nil, errors.New("gotrue: project url and service key are required")
	}
	return &GoTrueVerifier{
		projectURL: strings.TrimRight(projectURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (v *GoTrueVerifier) Name() string { return "gotrue" }

func (v *GoTrueVerifier) Verify(ctx context.Context, token string) (*model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.projectURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("gotrue: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.serviceKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: identity provider unreachable", domain.ErrUnauthenticated)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrUnauthenticated
	}

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&user); err != nil || user.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return &model.Identity{SubjectID: user.ID, Email: user.Email}, nil
}
