package sync

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestPlainTextBodyMultipart(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailapi.MessagePart{
			{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: b64("<p>hello</p>")}},
			{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: b64("hello")}},
		},
	}
	assert.Equal(t, "hello", PlainTextBody(payload))
}

func TestPlainTextBodySinglePart(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: b64("just text")},
	}
	assert.Equal(t, "just text", PlainTextBody(payload))
}

func TestPlainTextBodyUnpaddedData(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("no padding"))},
	}
	assert.Equal(t, "no padding", PlainTextBody(payload))
}

func TestPlainTextBodyNoPlainPart(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailapi.MessagePart{
			{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: b64("<p>hi</p>")}},
			{MimeType: "image/png", Body: &gmailapi.MessagePartBody{Data: b64("pngdata")}},
		},
	}
	assert.Equal(t, "", PlainTextBody(payload))
}

func TestPlainTextBodySkipsEmptyPlainPart(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmailapi.MessagePart{
			{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{}},
			{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: b64("second part")}},
		},
	}
	assert.Equal(t, "second part", PlainTextBody(payload))
}

func TestPlainTextBodyDecodeFailure(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: "!!! not base64 !!!"},
	}
	assert.Equal(t, "", PlainTextBody(payload))
}

func TestPlainTextBodyInvalidUTF8(t *testing.T) {
	payload := &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})},
	}
	assert.Equal(t, "", PlainTextBody(payload))
}

func TestPlainTextBodyNilCases(t *testing.T) {
	assert.Equal(t, "", PlainTextBody(nil))
	assert.Equal(t, "", PlainTextBody(&gmailapi.MessagePart{MimeType: "text/plain"}))
}
