package domain

import (
	"encoding/json"
	"errors"
)

var errNonStringUID = errors.New("uid must be a string")

// TokenRequest is the inbound body of POST /createCustomToken.
type TokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

// UnmarshalJSON reads the "uid" key exactly; encoding/json would otherwise
// also accept "UID" or "Uid". Falsy values (null, false, 0) leave UID empty,
// any other non-string value is an error.
func (r *TokenRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	raw, ok := fields["uid"]
	if !ok {
		return nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case string:
		r.UID = v
	case nil:
	case bool:
		if v {
			return errNonStringUID
		}
	case float64:
		if v != 0 {
			return errNonStringUID
		}
	default:
		return errNonStringUID
	}
	return nil
}

// TokenResponse is the success body of POST /createCustomToken.
type TokenResponse struct {
	CustomToken string `json:"customToken"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
