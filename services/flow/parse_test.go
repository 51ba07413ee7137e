// File: services/flow/parse_test.go
package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parseNow = time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15.8.2026", "2026-08-15"},
		{"15. 8. 2026", "2026-08-15"},
		{"Prišli bi 15. avgusta", "2026-08-15"},
		{"15. avgust 2026", "2026-08-15"},
		{"2026-08-15", "2026-08-15"},
		{"15 May 2026", "2026-05-15"},
		{"3 June", "2026-06-03"},
		{"danes", "2026-04-01"},
		{"jutri", "2026-04-02"},
		{"pojutrišnjem", "2026-04-03"},
		// A year-less date already past rolls into the next year.
		{"15. 2.", "2027-02-15"},
		{"Lahko 7.4.?", "2026-04-07"},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.in, parseNow)
		require.True(t, ok, "ParseDate(%q)", c.in)
		assert.Equal(t, c.want, got.Format("2006-01-02"), "ParseDate(%q)", c.in)
	}

	for _, bad := range []string{"nekoč", "32.13.2026", "soba Lipa"} {
		_, ok := ParseDate(bad, parseNow)
		assert.False(t, ok, "ParseDate(%q) should fail", bad)
	}
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"19:30", "19:30"},
		{"ob 19h", "19:00"},
		{"ob 19", "19:00"},
		{"12.30", "12:30"},
		{"Prišli bi ob 18:15", "18:15"},
		{"19", "19:00"},
	}
	for _, c := range cases {
		got, ok := ParseTime(c.in)
		require.True(t, ok, "ParseTime(%q)", c.in)
		assert.Equal(t, c.want, got, "ParseTime(%q)", c.in)
	}

	_, ok := ParseTime("zvečer")
	assert.False(t, ok)
}

func TestParseGuests(t *testing.T) {
	adults, children, ok := ParseGuests("2 odrasla in 2 otroka")
	require.True(t, ok)
	assert.Equal(t, 2, adults)
	assert.Equal(t, 2, children)

	adults, children, ok = ParseGuests("za štiri osebe")
	require.True(t, ok)
	assert.Equal(t, 4, adults)
	assert.Equal(t, 0, children)

	adults, children, ok = ParseGuests("4")
	require.True(t, ok)
	assert.Equal(t, 4, adults)
	assert.Equal(t, 0, children)

	_, _, ok = ParseGuests("vsi skupaj")
	assert.False(t, ok)
}

func TestParseNights(t *testing.T) {
	n, ok := ParseNights("3 noči")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = ParseNights("5")
	require.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = ParseNights("en teden")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = ParseNights("za vikend")
	require.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = ParseNights("dolgo")
	assert.False(t, ok)
}

func TestParseContact(t *testing.T) {
	email, ok := ParseEmail("pišite na Janez.Novak@example.com prosim")
	require.True(t, ok)
	assert.Equal(t, "janez.novak@example.com", email)

	phone, ok := ParsePhone("moja številka je 041 555 123")
	require.True(t, ok)
	assert.Equal(t, "041 555 123", phone)

	phone, ok = ParsePhone("+386 41 555 123")
	require.True(t, ok)
	assert.Contains(t, phone, "+386")

	_, ok = ParsePhone("nimam telefona")
	assert.False(t, ok)
	_, ok = ParseEmail("nimam pošte")
	assert.False(t, ok)
}

func TestParseYesNo(t *testing.T) {
	yes, ok := ParseYesNo("ja")
	require.True(t, ok)
	assert.True(t, yes)

	yes, ok = ParseYesNo("ne hvala")
	require.True(t, ok)
	assert.False(t, yes)

	yes, ok = ParseYesNo("da, potrjujem")
	require.True(t, ok)
	assert.True(t, yes)

	_, ok = ParseYesNo("kaj pa vem, mogoče bi se dalo kako drugače")
	assert.False(t, ok)
}

func TestParseAges(t *testing.T) {
	assert.Equal(t, []int{5, 9}, ParseAges("5 in 9 let"))
	assert.Empty(t, ParseAges("ne vem"))
}
