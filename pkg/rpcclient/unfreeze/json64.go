package unfreeze

import (
	"strconv"
	"strings"
)

// json64 is an int64 that nodes encode either as a number or as a string.
type json64 int64

func (j *json64) UnmarshalJSON(data []byte) error {
	n, err := strconv.ParseInt(strings.Trim(string(data), `"`), 10, 64)
	if err != nil {
		return err
	}
	*j = json64(n)
	return nil
}
