package helpers

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeURL(t *testing.T) {
	u := "http://example.com/?access_token=somesecrettoken"
	testURL, err := url.Parse(u)
	assert.Nil(t, err)
	got := SanitizeURL(testURL)
	assert.True(t, strings.Contains(got, "REDACTED"))
}

func TestSanitizeURL_withNil(t *testing.T) {
	got := SanitizeURL(nil)
	assert.Empty(t, got)
}

func TestSanitizeURL_withoutToken(t *testing.T) {
	u := "http://example.com/"
	testURL, err := url.Parse(u)
	assert.Nil(t, err)
	got := SanitizeURL(testURL)
	assert.Equal(t, testURL.String(), got)
}

func TestContentDisposition(t *testing.T) {
	got := ContentDisposition("attachment", "report.pdf")
	assert.Equal(t, `attachment; filename="report.pdf"`, got)
}

func TestContentDisposition_withNonASCII(t *testing.T) {
	got := ContentDisposition("attachment", "informe-año.pdf")
	assert.Contains(t, got, `filename="informe-a_o.pdf"`)
	assert.Contains(t, got, "filename*=UTF-8''")
}

func TestRedactString(t *testing.T) {
	got := RedactString("supersecretvalue")
	assert.True(t, strings.HasPrefix(got, "XXXXXXXXXX"))
	assert.False(t, strings.Contains(got, "supersecret"))
}

func TestRedactString_withEmpty(t *testing.T) {
	assert.Equal(t, "", RedactString(""))
	assert.Equal(t, "X", RedactString("a"))
}
