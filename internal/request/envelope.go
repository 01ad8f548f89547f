// Package request defines the concrete request shapes of the scoring
// service on top of the schema engine: the outer method envelope and the
// two business argument payloads.
package request

import (
	"github.com/scorepoint/scoring-gateway/internal/schema"
)

var envelopeSchema = schema.New("method_request",
	schema.Field{Name: "account", Kind: schema.Char{}, Nullable: true},
	schema.Field{Name: "login", Kind: schema.Char{}, Required: true, Nullable: true},
	schema.Field{Name: "token", Kind: schema.Char{}, Required: true, Nullable: true},
	schema.Field{Name: "arguments", Kind: schema.Arguments{}, Required: true, Nullable: true},
	schema.Field{Name: "method", Kind: schema.Char{}, Required: true},
)

// Envelope is the validated outer method request.
type Envelope struct {
	Account   string
	Login     string
	Token     string
	Method    string
	Arguments map[string]any
}

// ParseEnvelope validates the raw request body against the envelope schema.
// On validation failure the field->message mapping is returned instead.
func ParseEnvelope(body map[string]any) (*Envelope, map[string]string) {
	res := envelopeSchema.Validate(body)
	if !res.Valid() {
		return nil, res.Errors
	}

	args, _ := res.Values["arguments"].(map[string]any)
	if args == nil {
		args = map[string]any{}
	}

	return &Envelope{
		Account:   res.String("account"),
		Login:     res.String("login"),
		Token:     res.String("token"),
		Method:    res.String("method"),
		Arguments: args,
	}, nil
}
