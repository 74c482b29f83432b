package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/chain33-go/chain33/pkg/chainrpc"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const defaultDialTimeout = 4 * time.Second

// Client represents the middleman for executing JSON RPC calls to remote
// Chain33 nodes. Client is thread-safe and can be used from multiple
// goroutines, it holds no state besides the connection pool and the request
// identifier counter.
type Client struct {
	cli      *http.Client
	endpoint *url.URL
	ctx      context.Context
	opts     Options
	log      *zap.Logger
	requestF func(*chainrpc.Request) (*chainrpc.Response, error)

	latestReqID *atomic.Uint64
	// getNextRequestID returns an ID to be used for the subsequent request creation.
	// It is defined on Client, so that our testing code can override this method
	// for the sake of more predictable request IDs generation behavior.
	getNextRequestID func() uint64
}

// Options defines options for the RPC client. All values are optional.
// Client has no request timeout by default, the context passed to New can be
// used to cancel requests if needed.
type Options struct {
	// DialTimeout limits connection establishment, zero means no limit.
	DialTimeout time.Duration
	// RequestTimeout limits the whole HTTP round trip, zero means no limit.
	RequestTimeout time.Duration
	// Limit total number of connections per host. No limit by default.
	MaxConnsPerHost int
	// Logger is used for debug logging of every call, zap.NewNop() is used
	// if it's nil.
	Logger *zap.Logger
}

// New returns a new Client ready to use. endpoint is the node URL, like
// "http://127.0.0.1:8801".
func New(ctx context.Context, endpoint string, opts Options) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q", endpoint)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.DialTimeout,
			}).DialContext,
			MaxConnsPerHost: opts.MaxConnsPerHost,
		},
		Timeout: opts.RequestTimeout,
	}

	cl := &Client{
		cli:         httpClient,
		endpoint:    u,
		ctx:         ctx,
		opts:        opts,
		log:         opts.Logger,
		latestReqID: atomic.NewUint64(0),
	}
	cl.getNextRequestID = cl.getRequestID
	cl.requestF = cl.makeHTTPRequest
	return cl, nil
}

func (c *Client) getRequestID() uint64 {
	return c.latestReqID.Inc()
}

// Endpoint returns the node URL the client is connected to.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Close closes unused underlying networks connections.
func (c *Client) Close() {
	c.cli.CloseIdleConnections()
}

// Send performs a single call of namespace.method (DefaultNamespace is used
// for an empty one) and returns the raw result. Any failure is returned as
// *chainrpc.RequestError. A response is only accepted if its id equals the
// request's one, the result is dropped otherwise.
func (c *Client) Send(method string, params interface{}, namespace string) (json.RawMessage, error) {
	var (
		r     = chainrpc.NewRequest(c.getNextRequestID(), namespace, method, params)
		start = time.Now()
	)

	raw, err := c.requestF(r)
	if err == nil {
		err = checkResponse(r, raw)
	}
	observeRequest(r.Method, time.Since(start), err)
	if err != nil {
		c.log.Debug("RPC call failed",
			zap.String("method", r.Method),
			zap.Uint64("id", r.ID),
			zap.Error(err))
		return nil, chainrpc.NewRequestError(r.Method, err)
	}
	c.log.Debug("RPC call",
		zap.String("method", r.Method),
		zap.Uint64("id", r.ID),
		zap.Duration("took", time.Since(start)))
	return raw.Result, nil
}

// Call performs DefaultNamespace method call and unmarshals the result into v.
func (c *Client) Call(method string, params interface{}, v interface{}) error {
	return c.CallNS("", method, params, v)
}

// CallNS performs method call in the given namespace and unmarshals the
// result into v (which can be nil if the result is not needed).
func (c *Client) CallNS(namespace, method string, params interface{}, v interface{}) error {
	res, err := c.Send(method, params, namespace)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(res, v); err != nil {
		return chainrpc.NewRequestError(chainrpc.Method(namespace, method), fmt.Errorf("malformed result: %w", err))
	}
	return nil
}

func checkResponse(r *chainrpc.Request, raw *chainrpc.Response) error {
	switch {
	case raw == nil:
		return chainrpc.ErrNoResult
	case raw.ID == nil:
		return chainrpc.ErrMissingID
	case *raw.ID != r.ID:
		return fmt.Errorf("%w: got %d, expected %d", chainrpc.ErrIDMismatch, *raw.ID, r.ID)
	}
	if msg := raw.ErrorMessage(); msg != "" {
		return &chainrpc.ServerError{Message: msg}
	}
	if !raw.HasResult() {
		return chainrpc.ErrNoResult
	}
	return nil
}

func (c *Client) makeHTTPRequest(r *chainrpc.Request) (*chainrpc.Response, error) {
	var (
		buf = new(bytes.Buffer)
		raw = new(chainrpc.Response)
	)

	if err := json.NewEncoder(buf).Encode(r); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.endpoint.String(), buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The node might send us a proper JSON anyway, so look there first and if
	// it parses, it has more relevant data than HTTP error code.
	err = json.NewDecoder(resp.Body).Decode(raw)
	if err != nil {
		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("HTTP %d/%s", resp.StatusCode, http.StatusText(resp.StatusCode))
		} else {
			err = fmt.Errorf("JSON decoding: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Ping attempts to create a connection to the endpoint
// and returns an error if there is any.
func (c *Client) Ping() error {
	conn, err := net.DialTimeout("tcp", c.endpoint.Host, defaultDialTimeout)
	if err != nil {
		return err
	}
	_ = conn.Close()
	return nil
}
