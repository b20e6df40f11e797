package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultPoll    = 100 * time.Millisecond
	publishRetries = 3
)

type ClientOption func(c *Client)

func WithPollInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		if interval > 0 {
			c.poll = interval
		}
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client publishes local moves to a relay and polls it for the
// opponent's.
type Client struct {
	url        string
	httpClient *http.Client
	poll       time.Duration
}

func NewClient(url string, options ...ClientOption) *Client {
	c := &Client{ // Default values
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		poll:       defaultPoll,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Publish stores msg on the relay, retrying transient transport failures.
func (c *Client) Publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to encode the move")
	}

	err = retry.Do(
		func() error { return c.post(ctx, body) },
		retry.Attempts(publishRetries),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to publish the move for turn %d", msg.Turn)
	}
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("broker returned status %d", resp.StatusCode)
	}
	var reply envelope
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return errors.Wrap(err, "failed to decode the broker response")
	}
	if !reply.Success {
		return errors.New("broker rejected the move")
	}
	return nil
}

// Fetch returns the move currently stored on the relay, if any.
func (c *Client) Fetch(ctx context.Context) (Message, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Message{}, false, errors.Wrap(err, "failed to build the broker request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Message{}, false, errors.Wrap(err, "failed to reach the broker")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Message{}, false, errors.Errorf("broker returned status %d", resp.StatusCode)
	}
	var reply envelope
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Message{}, false, errors.Wrap(err, "failed to decode the broker response")
	}
	if !reply.Success {
		return Message{}, false, errors.New("broker reported a failure")
	}
	if reply.Data == nil {
		return Message{}, false, nil
	}
	return *reply.Data, true, nil
}

// Await polls the relay until the move for the wanted turn shows up or
// ctx expires. Transport hiccups are logged and polling continues.
func (c *Client) Await(ctx context.Context, turn int) (Message, error) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		msg, ok, err := c.Fetch(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("broker poll failed, retrying")
		} else if ok && msg.Turn == turn {
			return msg, nil
		}

		select {
		case <-ctx.Done():
			return Message{}, errors.Wrapf(ctx.Err(), "failed to await the move for turn %d", turn)
		case <-ticker.C:
		}
	}
}
