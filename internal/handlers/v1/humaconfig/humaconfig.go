package humaconfig

import (
	"encoding/json"
	"maps"
	"net/url"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

const formContentType = "application/x-www-form-urlencoded"

// ErrorModel is the body of every error response: a human readable message
// plus, where there is one, the underlying error.
type ErrorModel struct {
	Status  int    `json:"-"`
	Message string `json:"message" doc:"What went wrong"`
	Detail  string `json:"error,omitempty" doc:"Underlying error, when available"`
}

func (e *ErrorModel) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

func (e *ErrorModel) GetStatus() int {
	return e.Status
}

// NewError replaces huma's problem+json errors with ErrorModel.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	return &ErrorModel{
		Status:  status,
		Message: msg,
		Detail:  strings.Join(details, "; "),
	}
}

func init() {
	huma.NewError = NewError
}

// NewConfig returns huma's default config with form-encoded request bodies
// accepted alongside JSON. Response bodies carry exactly their declared
// fields, without the `$schema` link or the Link header.
func NewConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil
	config.Formats = maps.Clone(config.Formats)
	config.Formats[formContentType] = huma.Format{
		// Responses stay JSON even for a client that asks for form encoding.
		Marshal:   huma.DefaultJSONFormat.Marshal,
		Unmarshal: unmarshalForm,
	}
	return config
}

// unmarshalForm decodes a form body into v by way of the equivalent JSON
// object; single values become strings, repeated keys become arrays.
func unmarshalForm(data []byte, v any) error {
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return err
	}

	object := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			object[key] = vals[0]
			continue
		}
		list := make([]any, len(vals))
		for i, val := range vals {
			list[i] = val
		}
		object[key] = list
	}

	encoded, err := json.Marshal(object)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, v)
}
