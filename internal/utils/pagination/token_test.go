package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)
	id := "expense-123"

	token := EncodeToken(date, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, date.Equal(decodedDate), "Date should match after decode")
	assert.Equal(t, id, decodedID, "ID should match after decode")

	// Zero time round-trips too
	zeroToken := EncodeToken(time.Time{}, "id")
	decodedZero, _, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZero.IsZero())
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64 but no separator
	noSeparator := base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err, "Should return an error for a token without a separator")
	assert.Contains(t, err.Error(), "split")

	// Separator present but the date part is garbage
	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|expense-123"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err, "Should return an error for an unparseable date")
	assert.Contains(t, err.Error(), "date parse")
}

func TestTokenPreservesIDWithPipes(t *testing.T) {
	// SplitN keeps everything after the first separator in the ID
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	token := EncodeToken(date, "id|with|pipes")

	_, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "id|with|pipes", decodedID)
}
