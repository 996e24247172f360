package mapper_test

import (
	"encoding/json"
	"testing"

	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Int(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int64
	}{
		{"plain string", "42", 42},
		{"leading digits", "12abc", 12},
		{"no digits", "abc", 0},
		{"negative", "-5", -5},
		{"decimal string", "3.7", 3},
		{"json number", json.Number("7"), 7},
		{"float", 3.9, 3},
		{"bool true", true, 1},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mapper.Params{"v": tt.value}
			assert.Equal(t, tt.want, p.Int("v"))
		})
	}

	t.Run("missing key", func(t *testing.T) {
		assert.Equal(t, int64(0), mapper.Params{}.Int("v"))
	})
}

func TestParams_NullableInt(t *testing.T) {
	p := mapper.Params{"discount": "15", "blank": " ", "null": nil}

	require.NotNil(t, p.NullableInt("discount"))
	assert.Equal(t, 15, *p.NullableInt("discount"))
	assert.Nil(t, p.NullableInt("blank"))
	assert.Nil(t, p.NullableInt("null"))
	assert.Nil(t, p.NullableInt("missing"))
}

func TestParams_Bool(t *testing.T) {
	p := mapper.Params{
		"on":    "on",
		"one":   "1",
		"zero":  "0",
		"true":  "true",
		"word":  "yes please",
		"int":   2,
		"false": false,
	}

	assert.True(t, p.Bool("on"))
	assert.True(t, p.Bool("one"))
	assert.False(t, p.Bool("zero"))
	assert.True(t, p.Bool("true"))
	assert.False(t, p.Bool("word"))
	assert.True(t, p.Bool("int"))
	assert.False(t, p.Bool("false"))
	assert.False(t, p.Bool("missing"))
}

func TestParams_NullableString(t *testing.T) {
	p := mapper.Params{"name": "Acme", "empty": "", "num": json.Number("12")}

	require.NotNil(t, p.NullableString("name"))
	assert.Equal(t, "Acme", *p.NullableString("name"))
	require.NotNil(t, p.NullableString("empty"))
	assert.Equal(t, "", *p.NullableString("empty"))
	assert.Equal(t, "12", *p.NullableString("num"))
	assert.Nil(t, p.NullableString("missing"))
}

func TestParams_KontragentType(t *testing.T) {
	tests := []struct {
		name string
		in   mapper.Params
		want domain.KontragentType
	}{
		{"kontragent key", mapper.Params{"kontragent": "3"}, domain.KontragentTypeAgency},
		{"fallback key", mapper.Params{"kontragent_type": 2}, domain.KontragentTypeLegalEntity},
		{"kontragent wins", mapper.Params{"kontragent": "2", "kontragent_type": "3"}, domain.KontragentTypeLegalEntity},
		{"out of range", mapper.Params{"kontragent": 7}, domain.KontragentTypeIndividual},
		{"garbage", mapper.Params{"kontragent": "x"}, domain.KontragentTypeIndividual},
		{"missing", mapper.Params{}, domain.KontragentTypeIndividual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.KontragentType())
		})
	}
}

func TestParams_EditID(t *testing.T) {
	assert.Equal(t, int64(9), mapper.Params{"id_people": "9", "edit_id": "4"}.EditID())
	assert.Equal(t, int64(4), mapper.Params{"edit_id": "4"}.EditID())
	assert.Equal(t, int64(0), mapper.Params{}.EditID())
}

func TestParams_JSON(t *testing.T) {
	p := mapper.Params{
		"encoded": `["name","contains","Acme"]`,
		"decoded": []interface{}{"a"},
		"broken":  `[1,`,
		"blank":   "  ",
	}

	assert.Equal(t, []interface{}{"name", "contains", "Acme"}, p.JSON("encoded"))
	assert.Equal(t, []interface{}{"a"}, p.JSON("decoded"))
	assert.Nil(t, p.JSON("broken"))
	assert.Nil(t, p.JSON("blank"))
	assert.Nil(t, p.JSON("missing"))
}

func TestCanonicalDate(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"2024-03-05", strPtr("2024-03-05")},
		{"2024/03/05", strPtr("2024-03-05")},
		{"2024-03-05 14:30:00", strPtr("2024-03-05")},
		{"2024-03-05T00:00:00Z", strPtr("2024-03-05")},
		{"March 5, 2024", strPtr("2024-03-05")},
		{"01.02.2020", strPtr("2020-02-01")},
		{"13.02.2020", strPtr("2020-02-13")},
		{"5.3.2024", strPtr("2024-03-05")},
		{"13.02.2020 10:15:00", strPtr("2020-02-13")},
		{"31.02.2020", nil},
		{"03/05/2024", strPtr("2024-03-05")},
		{"", nil},
		{"   ", nil},
		{"0000-00-00", nil},
		{"xyz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, mapper.CanonicalDate(tt.in))
		})
	}
}

func TestParams_DateOrEmpty(t *testing.T) {
	p := mapper.Params{"order_date": "2023/12/01", "issued": "24.12.2023", "bad": "xyz"}

	assert.Equal(t, "2023-12-01", p.DateOrEmpty("order_date"))
	assert.Equal(t, "2023-12-24", p.DateOrEmpty("issued"))
	assert.Equal(t, "", p.DateOrEmpty("bad"))
	assert.Equal(t, "", p.DateOrEmpty("missing"))
}

func strPtr(s string) *string {
	return &s
}
