package sync

import (
	"encoding/base64"
	"unicode/utf8"

	gmailapi "google.golang.org/api/gmail/v1"
)

// PlainTextBody extracts the decoded plain-text payload from a message body
// structure. For multi-part messages it scans the top-level parts in order
// and takes the first part whose MIME type is exactly "text/plain" with
// non-empty data; single-part messages contribute their own payload. There
// is no plain text to find in anything else, and a payload that fails to
// decode counts as empty. This function never fails.
func PlainTextBody(payload *gmailapi.MessagePart) string {
	if payload == nil {
		return ""
	}
	if len(payload.Parts) > 0 {
		for _, part := range payload.Parts {
			if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
				return decodeBody(part.Body.Data)
			}
		}
		return ""
	}
	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}
	return ""
}

// decodeBody decodes a base64url payload, tolerating both padded and
// unpadded input. Anything that is not valid base64url-encoded UTF-8 text
// yields the empty string.
func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	if !utf8.Valid(decoded) {
		return ""
	}
	return string(decoded)
}
