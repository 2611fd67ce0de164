// Package platform holds the thin client for the community-platform
// gateway. The gateway owns identity and role resolution; this process only
// fetches what it exposes.
package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"scad/internal/models"
	"scad/internal/structures"
)

type RosterProviderInterface interface {
	Configured() bool
	FetchMembers(ctx context.Context) ([]models.Member, error)
}

type RosterClient struct {
	url    string
	client *http.Client
}

func NewRosterClient(conf *structures.Config) RosterProviderInterface {
	timeout := conf.Platform.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RosterClient{
		url:    conf.Platform.RosterURL,
		client: &http.Client{Timeout: timeout},
	}
}

func (rc *RosterClient) Configured() bool {
	return rc.url != ""
}

func (rc *RosterClient) FetchMembers(ctx context.Context) ([]models.Member, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rc.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch roster: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Members []models.Member `json:"members"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return payload.Members, nil
}
