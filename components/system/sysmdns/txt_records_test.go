package sysmdns

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestFormatTxtRecordsSorted(t *testing.T) {
	records := FormatTxtRecords(map[string]string{
		"foo": "bar",
		"abc": "",
		"key": "a=b",
	})

	require.Equal(t, []string{"abc=", "foo=bar", "key=a=b"}, records)
}

func TestFormatTxtRecordsTruncate(t *testing.T) {
	records := FormatTxtRecords(map[string]string{
		"foo": strings.Repeat("x", 300),
	})

	require.Len(t, records, 1)
	require.Len(t, records[0], MaxTxtRecordLength)
	require.Equal(t, "foo="+strings.Repeat("x", MaxTxtRecordLength-4), records[0])

	msg := &dns.Msg{}
	msg.SetQuestion("foo._servus._tcp.local.", dns.TypeTXT)
	msg.Answer = append(msg.Answer, &dns.TXT{
		Hdr: dns.RR_Header{
			Name:   "foo._servus._tcp.local.",
			Rrtype: dns.TypeTXT,
			Class:  dns.ClassINET,
			Ttl:    120,
		},
		Txt: records,
	})

	_, err := msg.Pack()
	require.NoError(t, err)
}

func TestFormatTxtRecordsTruncateRune(t *testing.T) {
	// "é" is 2 bytes, the limit falls in the middle of a rune.
	records := FormatTxtRecords(map[string]string{
		"abc": strings.Repeat("é", 200),
	})

	require.Len(t, records, 1)
	require.True(t, utf8.ValidString(records[0]))
	require.Equal(t, "abc="+strings.Repeat("é", 125), records[0])
}

func TestLimitTxtValuesLongKey(t *testing.T) {
	longKey := strings.Repeat("k", MaxTxtRecordLength)
	fitKey := strings.Repeat("k", MaxTxtRecordLength-1)

	limited := LimitTxtValues(map[string]string{
		longKey: "v",
		fitKey:  "v",
		"foo":   "bar",
	})

	require.Equal(t, map[string]string{
		fitKey: "",
		"foo":  "bar",
	}, limited)
}

func TestParseTxtRecords(t *testing.T) {
	text := ParseTxtRecords([]string{
		"foo=bar",
		"flag",
		"=ignored",
		"key=a=b",
		"foo=baz",
	})

	require.Equal(t, map[string]string{
		"foo":  "bar",
		"flag": "",
		"key":  "a=b",
	}, text)
}

func TestTxtRecordsRoundTrip(t *testing.T) {
	text := map[string]string{"foo": "bar", "bar": "baz"}

	require.Equal(t, text, ParseTxtRecords(FormatTxtRecords(text)))
}

func TestLimitTxtValuesCopy(t *testing.T) {
	text := map[string]string{"foo": "bar"}

	limited := LimitTxtValues(text)
	limited["foo"] = "baz"

	require.Equal(t, "bar", text["foo"])
}
