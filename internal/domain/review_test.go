package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductID(t *testing.T) {
	id, err := ParseProductID(" 8123456789012 ")
	require.NoError(t, err)
	assert.Equal(t, ProductID("8123456789012"), id)

	big, err := ParseProductID("123456789012345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", big.String())

	_, err = ParseProductID("gid://shopify/Product/1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseProductID("")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseProductID("-5")
	assert.ErrorIs(t, err, ErrInvalidInput)

	widest := strings.Repeat("9", 39)
	id, err = ParseProductID(widest)
	require.NoError(t, err)
	assert.Equal(t, ProductID(widest), id)

	_, err = ParseProductID("1" + widest)
	assert.ErrorIs(t, err, ErrInvalidInput)

	padded, err := ParseProductID("000" + widest)
	require.NoError(t, err)
	assert.Equal(t, ProductID(widest), padded)
}

func TestProductID_Scan(t *testing.T) {
	var id ProductID

	require.NoError(t, id.Scan([]byte("42")))
	assert.Equal(t, ProductID("42"), id)

	require.NoError(t, id.Scan(int64(7)))
	assert.Equal(t, ProductID("7"), id)

	assert.Error(t, id.Scan(3.5))
}

func TestParseModerationStatus(t *testing.T) {
	tests := map[string]ModerationStatus{
		"pending":      StatusPending,
		"Approved":     StatusApproved,
		"not approved": StatusNotApproved,
		"not_approved": StatusNotApproved,
	}
	for in, want := range tests {
		got, err := ParseModerationStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseModerationStatus("spam")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeShop(t *testing.T) {
	assert.Equal(t, "shop-a.myshopify.com", NormalizeShop("shop-a"))
	assert.Equal(t, "shop-a.myshopify.com", NormalizeShop(" https://Shop-A.myshopify.com/ "))
	assert.Equal(t, "", NormalizeShop("  "))
}
