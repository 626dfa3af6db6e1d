package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/labstack/echo/v4"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// JSONSerializer is echo's default serializer with a stricter decoder: a
// body must hold exactly one JSON value.
type JSONSerializer struct {
	echo.DefaultJSONSerializer
}

// Deserialize decodes the request body into i. An empty body yields io.EOF.
func (JSONSerializer) Deserialize(c echo.Context, i any) error {
	dec := json.NewDecoder(c.Request().Body)
	if err := dec.Decode(i); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
