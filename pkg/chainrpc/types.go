/*
Package chainrpc contains a set of types used for JSON-RPC communication with
Chain33 nodes. It defines the request envelope, the response and the errors
produced when a response can't be trusted.
*/
package chainrpc

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// DefaultNamespace is the principal RPC surface of the node, used for every
// method unless another one is requested explicitly.
const DefaultNamespace = "Chain33"

type (
	// Request is a single JSON-RPC call. Method is always namespaced
	// ("Chain33.GetBalance", "token.CreateRawTokenMintTx"). Chain33 methods
	// take one positional parameter object, so Params holds at most one
	// element and is omitted for calls without parameters.
	Request struct {
		ID     uint64        `json:"id"`
		Method string        `json:"method"`
		Params []interface{} `json:"params,omitempty"`
	}

	// Response is a raw JSON-RPC response. ID is nil when the node didn't
	// return any. Error is either null or a string, it's kept raw to be able
	// to handle other forms as well.
	Response struct {
		ID     *uint64         `json:"id"`
		Result json.RawMessage `json:"result,omitempty"`
		Error  json.RawMessage `json:"error,omitempty"`
	}
)

// Method returns fully-qualified method name for the given namespace, empty
// namespace means DefaultNamespace.
func Method(namespace, name string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + "." + name
}

// NewRequest builds a request envelope. Empty params (nil, empty maps,
// slices and anything that marshals to an empty JSON object or array) are not
// sent at all.
func NewRequest(id uint64, namespace, method string, params interface{}) *Request {
	r := &Request{
		ID:     id,
		Method: Method(namespace, method),
	}
	if !isEmpty(params) {
		r.Params = []interface{}{params}
	}
	return r
}

// Namespace returns the namespace part of the request method.
func (r *Request) Namespace() string {
	ns, _, _ := strings.Cut(r.Method, ".")
	return ns
}

// ErrorMessage returns the error reported by the node or an empty string if
// there is none.
func (r *Response) ErrorMessage() string {
	raw := bytes.TrimSpace(r.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(raw)
}

// HasResult tells whether the response carries a non-null result.
func (r *Response) HasResult() bool {
	raw := bytes.TrimSpace(r.Result)
	return len(raw) != 0 && !bytes.Equal(raw, []byte("null"))
}

func isEmpty(p interface{}) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return true
		}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return false
	}
	switch string(b) {
	case "null", "{}", "[]", `""`:
		return true
	}
	return false
}
