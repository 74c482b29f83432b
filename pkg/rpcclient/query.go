package rpcclient

// QueryParams is the parameter of the Chain33.Query method, it addresses
// executor-specific read functions.
type QueryParams struct {
	Execer   string      `json:"execer"`
	FuncName string      `json:"funcName"`
	Payload  interface{} `json:"payload"`
}

// Query calls funcName of the given executor with payload and unmarshals the
// result into v. execer must already be resolved for the current chain.
func (c *Client) Query(execer, funcName string, payload interface{}, v interface{}) error {
	return c.Call("Query", QueryParams{
		Execer:   execer,
		FuncName: funcName,
		Payload:  payload,
	}, v)
}
