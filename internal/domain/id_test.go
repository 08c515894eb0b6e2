package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_KeepsWireForm(t *testing.T) {
	var p struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 17, "b": "sku-17"}`), &p))

	assert.Equal(t, NumericID(17), p.A)
	assert.Equal(t, StringID("sku-17"), p.B)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":17,"b":"sku-17"}`, string(out))
	assert.Equal(t, `{"a":17,"b":"sku-17"}`, string(out))
}

func TestID_Null(t *testing.T) {
	var id ID
	require.NoError(t, json.Unmarshal([]byte(`null`), &id))
	assert.True(t, id.IsZero())
}

func TestID_InvalidJSON(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestParseID(t *testing.T) {
	assert.Equal(t, NumericID(3), ParseID("3"))
	assert.Equal(t, StringID("abc"), ParseID("abc"))
	assert.Equal(t, StringID(""), ParseID(""))
	assert.Equal(t, "4.5", ParseID("4.5").String())
	assert.NotEqual(t, StringID("3"), ParseID("3"))
}

func TestProduct_InStock(t *testing.T) {
	assert.True(t, Product{}.InStock(), "unknown stock")
	assert.True(t, Product{Stock: StockOf(2)}.InStock())
	assert.False(t, Product{Stock: StockOf(0)}.InStock())

	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Laptop","price":1299.99,"stock":0}`), &p))
	assert.False(t, p.InStock())
}
