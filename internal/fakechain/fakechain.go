/*
Package fakechain provides an in-process HTTP server that speaks Chain33
JSON-RPC. It's used in tests to emulate a node: handlers are registered per
fully-qualified method and every received call is recorded.
*/
package fakechain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Call is a single recorded request.
type Call struct {
	ID     uint64
	Method string
	// Params is the raw first (and only) parameter, nil if none was sent.
	Params json.RawMessage
}

// Decode unmarshals call parameter into v.
func (c Call) Decode(v interface{}) error {
	if c.Params == nil {
		return errors.New("no params")
	}
	return json.Unmarshal(c.Params, v)
}

// Handler produces the result for a call. A non-nil error is returned to the
// client in the "error" field of the response.
type Handler func(c Call) (interface{}, error)

// RawHandler writes the whole response body for the request with the given
// id. It's used to emulate broken nodes.
type RawHandler func(id uint64) string

// FakeChain is an HTTP JSON-RPC server emulating a Chain33 node.
type FakeChain struct {
	*httptest.Server

	t        testing.TB
	lock     sync.Mutex
	handlers map[string]Handler
	raw      map[string]RawHandler
	calls    []Call
}

// New starts a FakeChain, it's closed automatically when the test ends.
func New(t testing.TB) *FakeChain {
	fc := &FakeChain{
		t:        t,
		handlers: make(map[string]Handler),
		raw:      make(map[string]RawHandler),
	}
	fc.Server = httptest.NewServer(http.HandlerFunc(fc.serve))
	t.Cleanup(fc.Server.Close)
	return fc
}

// Handle registers h for the method ("Chain33.GetBalance").
func (fc *FakeChain) Handle(method string, h Handler) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.handlers[method] = h
}

// HandleRaw registers a handler that writes the response body directly.
func (fc *FakeChain) HandleRaw(method string, h RawHandler) {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	fc.raw[method] = h
}

// Result makes the method always return res.
func (fc *FakeChain) Result(method string, res interface{}) {
	fc.Handle(method, func(Call) (interface{}, error) { return res, nil })
}

// Fail makes the method always return the msg error.
func (fc *FakeChain) Fail(method string, msg string) {
	fc.Handle(method, func(Call) (interface{}, error) { return nil, errors.New(msg) })
}

// Calls returns all recorded calls in order of arrival.
func (fc *FakeChain) Calls() []Call {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	return append([]Call(nil), fc.calls...)
}

// CallsOf returns recorded calls of the given method.
func (fc *FakeChain) CallsOf(method string) []Call {
	var res []Call
	for _, c := range fc.Calls() {
		if c.Method == method {
			res = append(res, c)
		}
	}
	return res
}

// Methods returns methods of all recorded calls in order.
func (fc *FakeChain) Methods() []string {
	calls := fc.Calls()
	res := make([]string, len(calls))
	for i := range calls {
		res[i] = calls[i].Method
	}
	return res
}

func (fc *FakeChain) serve(w http.ResponseWriter, req *http.Request) {
	var in struct {
		ID     uint64            `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		fc.t.Errorf("Cannot decode request body: %s", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	c := Call{ID: in.ID, Method: in.Method}
	if len(in.Params) > 0 {
		c.Params = in.Params[0]
	}

	fc.lock.Lock()
	fc.calls = append(fc.calls, c)
	h, ok := fc.handlers[c.Method]
	rh, rawOK := fc.raw[c.Method]
	fc.lock.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if rawOK {
		_, _ = w.Write([]byte(rh(c.ID)))
		return
	}

	var resp = struct {
		ID     uint64      `json:"id"`
		Result interface{} `json:"result"`
		Error  interface{} `json:"error"`
	}{ID: c.ID}
	if !ok {
		resp.Error = fmt.Sprintf("method %s not found", c.Method)
	} else if res, err := h(c); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Result = res
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		fc.t.Errorf("Error writing response: %s", err)
	}
}

// Committer makes the node sign and send transactions: SignRawTx returns
// "signed:<txHex>" and SendTransaction returns hash.
func (fc *FakeChain) Committer(hash string) {
	fc.Handle("Chain33.SignRawTx", func(c Call) (interface{}, error) {
		var p struct {
			TxHex string `json:"txHex"`
		}
		if err := c.Decode(&p); err != nil {
			return nil, err
		}
		return "signed:" + p.TxHex, nil
	})
	fc.Result("Chain33.SendTransaction", hash)
}
