package menu

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{1.5, "$1.50"},
		{2, "$2.00"},
		{0.3, "$0.30"},
		{0.25, "$0.25"},
		{12.999, "$13.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price))
	}
}

func TestPricesKeepDocumentOrder(t *testing.T) {
	var m Menu
	body := `{"prices": {"zucchini": 1, "apple pie": 2.5, "muffin": 2.4}, "price_multiplier": {"small": 1.0, "large": 1.4}}`
	require.NoError(t, json.Unmarshal([]byte(body), &m))

	assert.Equal(t, Prices{{"zucchini", 1}, {"apple pie", 2.5}, {"muffin", 2.4}}, m.Prices)
	assert.Equal(t, Multipliers{{"small", 1.0}, {"large", 1.4}}, m.PriceMultiplier)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"prices":{"zucchini":1,"apple pie":2.5,"muffin":2.4},"price_multiplier":{"small":1,"large":1.4}}`, string(out))
}

func TestPricesDuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	var p Prices
	require.NoError(t, json.Unmarshal([]byte(`{"tea": 1, "soup": 2, "tea": 3}`), &p))
	assert.Equal(t, Prices{{"tea", 3}, {"soup", 2}}, p)
}

func TestPricesEmptyAndNull(t *testing.T) {
	var m Menu
	require.NoError(t, json.Unmarshal([]byte(`{"prices": {}}`), &m))
	assert.NotNil(t, m.Prices)
	assert.Empty(t, m.Prices)

	m = Menu{}
	require.NoError(t, json.Unmarshal([]byte(`{"prices": null}`), &m))
	assert.Nil(t, m.Prices)

	m = Menu{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &m))
	assert.Nil(t, m.Prices)
}

func TestPricesRejectMalformed(t *testing.T) {
	for _, body := range []string{
		`{"prices": ["coffee"]}`,
		`{"prices": {"coffee": "cheap"}}`,
		`{"prices": {"coffee": null}}`,
		`{"prices": 3}`,
	} {
		var m Menu
		assert.Error(t, json.Unmarshal([]byte(body), &m), body)
	}
}

func TestDefaultMenu(t *testing.T) {
	m := Default()
	assert.Len(t, m.Prices, 29)
	assert.Len(t, m.PriceMultiplier, 4)

	price, ok := m.Lookup("cappuccino")
	require.True(t, ok)
	assert.Equal(t, 2.50, price)

	_, ok = m.Lookup("pickles")
	assert.False(t, ok)
}

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt(Default())

	assert.True(t, strings.HasPrefix(prompt, "You are a friendly AI assistant for NoPickles"))
	assert.Contains(t, prompt, "- Coffee: $1.50\n")
	assert.Contains(t, prompt, "- Turkey Bacon Club: $3.00\n")
	assert.Contains(t, prompt, "- Blt: $2.90\n")
	assert.Contains(t, prompt, "- Croissant: $3.00\n\nSize multipliers (for beverages):\n")
	assert.Contains(t, prompt, "- Small: 1.0x price\n")
	assert.Contains(t, prompt, "- Extra Large: 1.6x price\n\nGuidelines:")
	assert.True(t, strings.HasSuffix(prompt, "provide the running total.\n"))
}
