package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"
)

func TestQuery(t *testing.T) {
	spec := NewSpec("hw@x.com", "harry@y.com", false)
	assert.Equal(t, "(from:hw@x.com to:harry@y.com) OR (from:harry@y.com to:hw@x.com)", spec.Query())

	spec = NewSpec("hw@x.com", "@y.com", true)
	assert.Equal(t, "(from:hw@x.com to:@y.com) OR (from:@y.com to:hw@x.com)", spec.Query())
}

func TestClassifyPairMode(t *testing.T) {
	spec := NewSpec("hw@x.com", "harry@y.com", false)

	tests := []struct {
		name      string
		from, to  string
		wantMatch bool
		want      Match
	}{
		{
			name: "outbound", from: "hw@x.com", to: "harry@y.com",
			wantMatch: true,
			want:      Match{Direction: DirectionOutbound, Counterpart: "harry@y.com"},
		},
		{
			name: "inbound", from: "harry@y.com", to: "hw@x.com",
			wantMatch: true,
			want:      Match{Direction: DirectionInbound, Counterpart: "harry@y.com"},
		},
		{
			name: "display names and case ignored",
			from: "Harry W <HW@X.com>", to: "\"Harry\" <Harry@Y.com>",
			wantMatch: true,
			want:      Match{Direction: DirectionOutbound, Counterpart: "harry@y.com"},
		},
		{name: "third party sender", from: "spam@z.com", to: "hw@x.com"},
		{name: "third party recipient", from: "hw@x.com", to: "other@z.com"},
		{name: "both outside the pair", from: "a@z.com", to: "b@z.com"},
		{name: "personal on both sides", from: "hw@x.com", to: "hw@x.com"},
		{name: "empty headers", from: "", to: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := spec.Classify(tt.from, tt.to)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.want, match)
			}
		})
	}
}

func TestClassifyDomainMode(t *testing.T) {
	spec := NewSpec("hw@x.com", "@y.com", true)

	tests := []struct {
		name      string
		from, to  string
		wantMatch bool
		want      Match
	}{
		{
			name: "outbound to domain", from: "hw@x.com", to: "harry@y.com",
			wantMatch: true,
			want:      Match{Direction: DirectionOutbound, Counterpart: "harry@y.com"},
		},
		{
			name: "inbound from domain", from: "anyone@y.com", to: "hw@x.com",
			wantMatch: true,
			want:      Match{Direction: DirectionInbound, Counterpart: "anyone@y.com"},
		},
		{name: "recipient outside domain", from: "hw@x.com", to: "someone@other.com"},
		{name: "sender outside domain", from: "someone@other.com", to: "hw@x.com"},
		{name: "domain on both sides without personal", from: "a@y.com", to: "b@y.com"},
		{
			name: "domain is a suffix, not a substring",
			from: "hw@x.com", to: "harry@y.com.evil.net",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := spec.Classify(tt.from, tt.to)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.want, match)
			}
		})
	}
}

func TestBareAddress(t *testing.T) {
	assert.Equal(t, "a@b.com", bareAddress("a@b.com"))
	assert.Equal(t, "a@b.com", bareAddress("Alice <A@B.com>"))
	assert.Equal(t, "a@b.com", bareAddress(`"Alice B" <a@b.com>`))
	assert.Equal(t, "", bareAddress(""))
	assert.Equal(t, "not an address", bareAddress("  Not An Address  "))
}

func TestHeaderValue(t *testing.T) {
	headers := []*gmailapi.MessagePartHeader{
		{Name: "Subject", Value: "first"},
		{Name: "subject", Value: "second"},
		{Name: "From", Value: "a@b.com"},
	}
	assert.Equal(t, "first", headerValue(headers, "subject"))
	assert.Equal(t, "a@b.com", headerValue(headers, "FROM"))
	assert.Equal(t, "", headerValue(headers, "To"))
}
