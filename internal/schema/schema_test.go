package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorepoint/scoring-gateway/internal/schema"
)

func testSchema() *schema.Schema {
	return schema.New("test_request",
		schema.Field{Name: "account", Kind: schema.Char{}, Nullable: true},
		schema.Field{Name: "login", Kind: schema.Char{}, Required: true, Nullable: true},
		schema.Field{Name: "method", Kind: schema.Char{}, Required: true},
	)
}

func TestSchema_Validate_RequiredMissing(t *testing.T) {
	res := testSchema().Validate(map[string]any{"method": "online_score"})

	assert.False(t, res.Valid())
	assert.Contains(t, res.Errors, "login")
	assert.NotContains(t, res.Errors, "account", "optional fields may be absent")
}

func TestSchema_Validate_NotNullableEmpty(t *testing.T) {
	res := testSchema().Validate(map[string]any{
		"login":  "user",
		"method": "",
	})

	assert.False(t, res.Valid())
	assert.Contains(t, res.Errors, "method")
}

func TestSchema_Validate_ExplicitNull(t *testing.T) {
	res := testSchema().Validate(map[string]any{
		"login":  nil,
		"method": "online_score",
	})

	require.True(t, res.Valid(), "null is allowed for a nullable field")
	assert.False(t, res.Has("login"), "a null field is not populated")
	assert.True(t, res.Has("method"))
}

func TestSchema_Validate_PopulatedOrder(t *testing.T) {
	res := testSchema().Validate(map[string]any{
		"method":  "online_score",
		"login":   "user",
		"account": "acct",
	})

	require.True(t, res.Valid())
	assert.Equal(t, []string{"account", "login", "method"}, res.Populated,
		"populated fields keep declaration order")
	assert.Equal(t, "user", res.String("login"))
}

func TestSchema_Validate_SemanticFailureRecorded(t *testing.T) {
	res := testSchema().Validate(map[string]any{
		"login":  123,
		"method": "online_score",
	})

	assert.False(t, res.Valid())
	assert.Contains(t, res.Errors, "login")
	assert.False(t, res.Has("login"))
	assert.True(t, res.Has("method"), "other fields still validate")
}

func TestResult_Fail(t *testing.T) {
	res := testSchema().Validate(map[string]any{
		"login":  "user",
		"method": "online_score",
	})
	require.True(t, res.Valid())

	res.Fail("arguments", "not enough of them")
	assert.False(t, res.Valid())
	assert.Equal(t, "not enough of them", res.Errors["arguments"])
}
