package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mergington/activities/shared/domain"
)

// ErrInvalidPayload marks a response body that is not valid JSON or does not
// match the activity schema.
var ErrInvalidPayload = errors.New("invalid payload")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ActivityDetails is the wire form of one activity value. Pointers let the
// validator tell a missing key from a zero value.
type ActivityDetails struct {
	Description     *string  `json:"description" validate:"required"`
	Schedule        *string  `json:"schedule" validate:"required"`
	MaxParticipants *int     `json:"max_participants" validate:"required,gte=0"`
	Participants    []string `json:"participants" validate:"required"`
}

type activityJSON struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ActivityList is the GET /activities body: a JSON object keyed by activity
// name. Unlike a map it keeps the key order of the document.
type ActivityList []domain.Activity

func (l ActivityList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		value, err := json.Marshal(activityJSON{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the object key by key so that document order is kept.
// Every value is validated; a repeated key replaces the earlier value in place.
func (l *ActivityList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected object, got %v", ErrInvalidPayload, tok)
	}

	list := ActivityList{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected key %v", ErrInvalidPayload, tok)
		}

		var details ActivityDetails
		if err := dec.Decode(&details); err != nil {
			return fmt.Errorf("%w: activity %q: %v", ErrInvalidPayload, name, err)
		}
		if err := validate.Struct(details); err != nil {
			return fmt.Errorf("%w: activity %q: %v", ErrInvalidPayload, name, err)
		}

		activity := domain.Activity{
			Name:            name,
			Description:     *details.Description,
			Schedule:        *details.Schedule,
			MaxParticipants: *details.MaxParticipants,
			Participants:    details.Participants,
		}
		if i, seen := index[name]; seen {
			list[i] = activity
			continue
		}
		index[name] = len(list)
		list = append(list, activity)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	*l = list
	return nil
}

// MessageResponse is the success body of signup and unregister.
type MessageResponse struct {
	Message string `json:"message" validate:"required"`
}

// ErrorResponse is the failure body of every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Validate checks a decoded DTO against its validate tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
