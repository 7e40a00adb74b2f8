package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	ts := time.Date(2024, 3, 1, 9, 30, 15, 123456789, loc)

	assert.Equal(t, "2024-03-01T00:30:15.123Z", Timestamp(ts))
}

func TestNewSuccessResponse(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	req := LawSearchRequest{Query: " 자동차", Target: "law", Page: 2, Display: 5}

	resp := NewSuccessResponse(req, map[string]interface{}{"a": 1}, now)

	assert.True(t, resp.Success)
	assert.Equal(t, Meta{
		Query:     " 자동차",
		Target:    "law",
		Page:      2,
		Display:   5,
		Timestamp: "2024-01-02T03:04:05.000Z",
	}, resp.Meta)
}

func TestErrorResponses(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	missing := NewMissingQueryResponse()
	assert.False(t, missing.Success)
	assert.Equal(t, CodeMissingQuery, missing.Code)
	assert.Equal(t, MsgMissingQuery, missing.Error)
	assert.Empty(t, missing.Timestamp)

	parse := NewParseErrorResponse("bad token")
	assert.Equal(t, CodeParseError, parse.Code)
	assert.Equal(t, "bad token", parse.Details)

	internal := NewInternalErrorResponse("boom", now)
	assert.Equal(t, CodeInternalError, internal.Code)
	assert.Equal(t, MsgInternalError, internal.Error)
	assert.Equal(t, "boom", internal.Message)
	assert.Equal(t, "2024-01-02T03:04:05.000Z", internal.Timestamp)
}
