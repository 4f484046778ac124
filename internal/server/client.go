package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/rostart/rostart/internal/errdefs"
	"github.com/rostart/rostart/internal/server/models"
)

// Client talks to a running wizard. It is not safe for concurrent use.
type Client struct {
	conn    net.Conn
	scanner *bufio.Scanner
	nextID  int
}

func Dial(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrHostUnavailable, err)
	}
	return &Client{conn: conn, scanner: bufio.NewScanner(conn)}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) send(method string, params map[string]interface{}) (int, error) {
	c.nextID++
	req := models.Request{ID: c.nextID, Method: method, Params: params}
	if err := json.NewEncoder(c.conn).Encode(req); err != nil {
		return 0, fmt.Errorf("send %s: %w", method, err)
	}
	return c.nextID, nil
}

func (c *Client) receive(result interface{}) error {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return err
		}
		return errors.New("connection closed")
	}

	var resp models.Response[json.RawMessage]
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	if result == nil || resp.Result == nil {
		return nil
	}
	return json.Unmarshal(*resp.Result, result)
}

// Call sends one request and decodes its result into result, which may be
// nil.
func (c *Client) Call(method string, params map[string]interface{}, result interface{}) error {
	if _, err := c.send(method, params); err != nil {
		return err
	}
	if err := c.receive(result); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// Subscribe streams dispatched intents to fn until ctx is done, the server
// closes the connection or fn returns an error.
func (c *Client) Subscribe(ctx context.Context, fn func(models.IntentEvent) error) error {
	if err := c.Call("wizard.subscribe", nil, nil); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	for {
		var event models.IntentEvent
		if err := c.receive(&event); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}
