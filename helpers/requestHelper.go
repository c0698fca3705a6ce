package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecodeStrict unmarshals a typed request body and rejects unknown keys, so
// the patchable surface of every entity is the struct itself rather than a
// runtime allowlist.
func DecodeStrict(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return fmt.Errorf("request contains a field that cannot be updated: %s", err.Error())
		}
		return err
	}
	// trailing garbage after the JSON document is a malformed body too
	if dec.More() {
		return fmt.Errorf("request body contains more than one JSON document")
	}
	return nil
}

// BindStrict is DecodeStrict against a gin request body.
func BindStrict(c *gin.Context, v interface{}) error {
	return DecodeStrict(c.Request.Body, v)
}
