package request

import (
	"strings"

	"github.com/scorepoint/scoring-gateway/internal/schema"
)

var onlineScoreSchema = schema.New("online_score",
	schema.Field{Name: "first_name", Kind: schema.Char{}, Nullable: true},
	schema.Field{Name: "last_name", Kind: schema.Char{}, Nullable: true},
	schema.Field{Name: "email", Kind: schema.Email{}, Nullable: true},
	schema.Field{Name: "phone", Kind: schema.Phone{}, Nullable: true},
	schema.Field{Name: "birthday", Kind: schema.BirthDay{}, Nullable: true},
	schema.Field{Name: "gender", Kind: schema.Gender{}, Nullable: true},
)

// scorePairs is the cross-field policy: at least one of these pairs must be
// fully populated for the request to be scorable.
var scorePairs = [][]string{
	{"phone", "email"},
	{"first_name", "last_name"},
	{"gender", "birthday"},
}

// OnlineScore is the validated argument payload of the online_score method.
type OnlineScore struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  string
	Gender    int64

	res *schema.Result
}

// ParseOnlineScore validates the inner arguments of an online_score call,
// including the pair policy.
func ParseOnlineScore(args map[string]any) (*OnlineScore, map[string]string) {
	res := onlineScoreSchema.Validate(args)
	if res.Valid() {
		satisfied := false
		for _, pair := range scorePairs {
			if res.Has(pair...) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			var pairs []string
			for _, pair := range scorePairs {
				pairs = append(pairs, strings.Join(pair, "/"))
			}
			res.Fail("arguments", "at least one pair of "+strings.Join(pairs, ", ")+" must be provided")
		}
	}
	if !res.Valid() {
		return nil, res.Errors
	}

	r := &OnlineScore{
		FirstName: res.String("first_name"),
		LastName:  res.String("last_name"),
		Email:     res.String("email"),
		Birthday:  res.String("birthday"),
		res:       res,
	}
	if v, ok := res.Values["phone"]; ok {
		r.Phone, _ = schema.DecimalString(v)
	}
	if v, ok := res.Values["gender"]; ok {
		r.Gender, _ = schema.IntValue(v)
	}
	return r, nil
}

// Has reports whether every named field was populated by the caller.
func (r *OnlineScore) Has(names ...string) bool { return r.res.Has(names...) }

// Populated lists the supplied field names in declaration order, for
// request diagnostics.
func (r *OnlineScore) Populated() []string { return r.res.Populated }
