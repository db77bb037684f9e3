package trip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Generator produces a trip route for a city. The real implementation
// talks to the external planning service; its internals are opaque and
// only the response shape is relied on.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GeneratedTrip, error)
}

type PlannerClient struct {
	baseURL string
	http    *http.Client
}

func NewPlannerClient(baseURL string) *PlannerClient {
	return &PlannerClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *PlannerClient) Generate(ctx context.Context, req GenerateRequest) (GeneratedTrip, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return GeneratedTrip{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return GeneratedTrip{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return GeneratedTrip{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GeneratedTrip{}, fmt.Errorf("planner returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Success bool          `json:"success"`
		Data    GeneratedTrip `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return GeneratedTrip{}, err
	}
	if !decoded.Success {
		return GeneratedTrip{}, fmt.Errorf("planner rejected request")
	}
	return decoded.Data, nil
}

// requestTokens hands out per-user monotonically increasing sequence
// numbers. A generate response is only delivered if its token is still
// the latest one issued for that user; slow responses superseded by a
// newer request are discarded instead of overwriting fresher state.
type requestTokens struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func newRequestTokens() *requestTokens {
	return &requestTokens{latest: map[string]uint64{}}
}

func (t *requestTokens) next(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[key]++
	return t.latest[key]
}

func (t *requestTokens) isLatest(key string, token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[key] == token
}
