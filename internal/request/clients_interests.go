package request

import (
	"github.com/scorepoint/scoring-gateway/internal/schema"
)

var clientsInterestsSchema = schema.New("clients_interests",
	schema.Field{Name: "client_ids", Kind: schema.ClientIDs{}, Required: true},
	schema.Field{Name: "date", Kind: schema.Date{}, Nullable: true},
)

// ClientsInterests is the validated argument payload of the
// clients_interests method.
type ClientsInterests struct {
	ClientIDs []int64
	Date      string
}

// ParseClientsInterests validates the inner arguments of a clients_interests
// call. client_ids must have been populated even when the field itself
// raised no error; this guards against a legitimately-empty list slipping
// through as valid.
func ParseClientsInterests(args map[string]any) (*ClientsInterests, map[string]string) {
	res := clientsInterestsSchema.Validate(args)
	if res.Valid() && !res.Has("client_ids") {
		res.Fail("client_ids", "client_ids must be provided")
	}
	if !res.Valid() {
		return nil, res.Errors
	}

	raw, _ := res.Values["client_ids"].([]any)
	ids := make([]int64, 0, len(raw))
	for _, el := range raw {
		id, _ := schema.IntValue(el)
		ids = append(ids, id)
	}

	return &ClientsInterests{
		ClientIDs: ids,
		Date:      res.String("date"),
	}, nil
}
