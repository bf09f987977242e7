package geo

import (
	"errors"
	"sync"
)

var ErrNoPendingRequest = errors.New("no pending geolocation request")

// Client is a Locator whose position is reported later by the connected
// client. Each Locate call replaces any request still pending.
type Client struct {
	mu        sync.Mutex
	onSuccess func(Coords)
	onFailure func(error)

	// OnRequest, if set, is called whenever a position is requested.
	OnRequest func()
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Locate(onSuccess func(Coords), onFailure func(error)) {
	c.mu.Lock()
	c.onSuccess = onSuccess
	c.onFailure = onFailure
	notify := c.OnRequest
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Pending reports whether a request is waiting for an answer.
func (c *Client) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onSuccess != nil
}

// Resolve answers the pending request with a position.
func (c *Client) Resolve(pos Coords) error {
	onSuccess, _, err := c.take()
	if err != nil {
		return err
	}
	onSuccess(pos)
	return nil
}

// Reject answers the pending request with a failure.
func (c *Client) Reject(cause error) error {
	_, onFailure, err := c.take()
	if err != nil {
		return err
	}
	if cause == nil {
		cause = ErrPositionUnavailable
	}
	onFailure(cause)
	return nil
}

func (c *Client) take() (func(Coords), func(error), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.onSuccess == nil {
		return nil, nil, ErrNoPendingRequest
	}
	s, f := c.onSuccess, c.onFailure
	c.onSuccess, c.onFailure = nil, nil
	return s, f, nil
}
