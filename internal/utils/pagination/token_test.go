package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard date/time values
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 4, 2, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(date, createdAt, "6b1f6c0e-1d2a-4c4e-9a51-7f0f8f0b2c11")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, date, decodedDate, "Date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, "6b1f6c0e-1d2a-4c4e-9a51-7f0f8f0b2c11", decodedID)

	// Test case 2: Current time values
	now := time.Now().UTC()
	nowToken := EncodeToken(now, now, "x")
	decodedNowDate, decodedNowTime, _, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNowDate), "Current date should match after decode")
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test missing id
	_, _, _, err = DecodeToken(EncodeMultiFieldToken("2025-03-15T00:00:00Z", "2025-03-15T00:00:00Z"))
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid date format
	_, _, _, err = DecodeToken(EncodeMultiFieldToken("notadate", "2025-03-15T00:00:00Z", "id"))
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse", "Error should mention date parsing issue")

	// Test invalid created_at format
	_, _, _, err = DecodeToken(EncodeMultiFieldToken("2025-03-15T00:00:00Z", "later", "id"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	decodedFields, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// When splitting an empty string with strings.Split, we get a slice with one empty string
	decodedEmpty, err := DecodeMultiFieldToken(EncodeMultiFieldToken())
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, decodedEmpty)
}
