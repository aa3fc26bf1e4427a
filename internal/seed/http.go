package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// poster posts reload batches to the service.
type poster struct {
	client  *http.Client
	baseURL string
}

func newPoster(baseURL string, timeout time.Duration) *poster {
	return &poster{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type reloadRequest struct {
	Events []Event `json:"events"`
}

// postBatch sends one reload request and decodes the ack. A 409 means a
// rebuild is in flight; the caller retries after a backoff.
func (p *poster) postBatch(ctx context.Context, events []Event) (ReloadAck, error) {
	body, err := json.Marshal(reloadRequest{Events: events})
	if err != nil {
		return ReloadAck{}, fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/reload", bytes.NewReader(body))
	if err != nil {
		return ReloadAck{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return ReloadAck{}, fmt.Errorf("post reload: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ReloadAck{}, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var ack ReloadAck
		if err := json.Unmarshal(data, &ack); err != nil {
			return ReloadAck{}, fmt.Errorf("decode ack: %w", err)
		}
		return ack, nil
	case http.StatusConflict:
		return ReloadAck{}, ErrBusy
	default:
		return ReloadAck{}, fmt.Errorf("%w: status %d: %s", ErrPostFailed, resp.StatusCode, string(data))
	}
}

// postAll splits events into batches and posts them sequentially, retrying
// busy responses with a backoff. Reloads are serialized server-side, so
// there is nothing to gain from posting batches concurrently.
func (p *poster) postAll(ctx context.Context, cfg *Config, events []Event, stats *Stats) error {
	const busyBackoff = 500 * time.Millisecond

	for start := 0; start < len(events); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(events) {
			end = len(events)
		}
		batch := events[start:end]

		for {
			ack, err := p.postBatch(ctx, batch)
			if err == nil {
				stats.BatchesPosted++
				stats.EventsIngested += ack.Ingested
				stats.EventsDuplicate += ack.Duplicates
				break
			}
			if errors.Is(err, ErrBusy) {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(busyBackoff):
					continue
				}
			}
			stats.BatchesFailed++
			return err
		}
	}
	return nil
}
