package model

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLawSearchRequest_Defaults(t *testing.T) {
	req := ParseLawSearchRequest(url.Values{"q": {"자동차"}})

	assert.Equal(t, LawSearchRequest{
		Query:   "자동차",
		Target:  "law",
		Page:    1,
		Display: 20,
		Search:  "0",
	}, req)
}

func TestParseLawSearchRequest_QueryFallback(t *testing.T) {
	assert.Equal(t, "a", ParseLawSearchRequest(url.Values{"q": {"a"}, "query": {"b"}}).Query)
	assert.Equal(t, "b", ParseLawSearchRequest(url.Values{"q": {""}, "query": {"b"}}).Query)
	assert.Equal(t, "b", ParseLawSearchRequest(url.Values{"query": {"b"}}).Query)
	assert.Equal(t, "", ParseLawSearchRequest(url.Values{}).Query)
}

func TestParseLawSearchRequest_Display(t *testing.T) {
	cases := map[string]int{
		"":     20,
		"5":    5,
		"100":  100,
		"101":  100,
		"5000": 100,
		"abc":  20,
		"0":    1,
		"-7":   1,
		" 30 ": 30,
	}
	for in, want := range cases {
		req := ParseLawSearchRequest(url.Values{"q": {"x"}, "display": {in}})
		assert.Equal(t, want, req.Display, "display=%q", in)
	}
}

func TestParseLawSearchRequest_Page(t *testing.T) {
	assert.Equal(t, 3, ParseLawSearchRequest(url.Values{"page": {"3"}}).Page)
	assert.Equal(t, 1, ParseLawSearchRequest(url.Values{"page": {"x"}}).Page)
	assert.Equal(t, 1, ParseLawSearchRequest(url.Values{"page": {"0"}}).Page)
}

func TestParseLawSearchRequest_Filters(t *testing.T) {
	req := ParseLawSearchRequest(url.Values{
		"q":          {"세법"},
		"target":     {"prec"},
		"search":     {"2"},
		"sort":       {"score"},
		"order":      {"asc"},
		"ancYd":      {"20200101"},
		"ancYdEnd":   {"20241231"},
		"department": {"기획재정부"},
	})

	assert.Equal(t, "prec", req.Target)
	assert.Equal(t, "2", req.Search)
	assert.Equal(t, "score", req.Sort)
	assert.Equal(t, "asc", req.Order)
	assert.Equal(t, "20200101", req.DateFrom)
	assert.Equal(t, "20241231", req.DateTo)
	assert.Equal(t, "기획재정부", req.Department)
}

func TestLawSearchRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, LawSearchRequest{Query: ""}.Validate(), ErrMissingQuery)
	assert.ErrorIs(t, LawSearchRequest{Query: "  \t\n"}.Validate(), ErrMissingQuery)
	assert.NoError(t, LawSearchRequest{Query: " 법 "}.Validate())
	assert.Equal(t, "법", LawSearchRequest{Query: " 법 "}.TrimmedQuery())
}
