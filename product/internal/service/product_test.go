package service

import (
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvProductRoundTrip(t *testing.T) {
	rows := []csvProduct{
		{ID: 1, Name: "Red T-Shirt", Price: decimal.RequireFromString("250.00"), Stock: 50, ScanCode: "POS_PRODUCT_1"},
		{ID: 2, Name: "Blue Jeans", Price: decimal.RequireFromString("1200.00"), Stock: 30, ScanCode: "POS_PRODUCT_2"},
	}

	out, err := gocsv.MarshalBytes(&rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,price,stock,scan_code", strings.TrimSpace(lines[0]))

	decoded := []csvProduct{}
	err = gocsv.UnmarshalBytes(out, &decoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "Red T-Shirt", decoded[0].Name)
	assert.True(t, rows[0].Price.Equal(decoded[0].Price))
	assert.EqualValues(t, 30, decoded[1].Stock)
	assert.Equal(t, "POS_PRODUCT_2", decoded[1].ScanCode)
}

func TestCsvProductImportRows(t *testing.T) {
	csvBody := "id,name,price,stock,scan_code\n" +
		",Leather Wallet,450.00,10,\n" +
		",,0,0,\n"

	rows := []csvProduct{}
	err := gocsv.UnmarshalBytes([]byte(csvBody), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Leather Wallet", rows[0].Name)
	assert.True(t, decimal.RequireFromString("450.00").Equal(rows[0].Price))
	assert.Empty(t, rows[1].Name)
}
