package sync

import (
	"fmt"
	"net/mail"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"
)

// Direction labels which way a matched message traveled relative to the
// personal address.
type Direction string

const (
	DirectionOutbound Direction = "outbound" // sent by the personal address
	DirectionInbound  Direction = "inbound"  // received by the personal address
)

// Spec is the immutable two-party filter for one sync run. Counterpart is an
// exact address, or a domain suffix ("@corp.io") when DomainMode is set.
type Spec struct {
	Personal    string
	Counterpart string
	DomainMode  bool
}

// NewSpec normalizes both sides to lowercase. No further validation happens
// here; a counterpart that never appears in real headers simply matches
// nothing.
func NewSpec(personal, counterpart string, domainMode bool) Spec {
	return Spec{
		Personal:    strings.ToLower(strings.TrimSpace(personal)),
		Counterpart: strings.ToLower(strings.TrimSpace(counterpart)),
		DomainMode:  domainMode,
	}
}

// Query builds the provider search expression covering both directions of
// the correspondence.
func (s Spec) Query() string {
	return fmt.Sprintf("(from:%s to:%s) OR (from:%s to:%s)",
		s.Personal, s.Counterpart, s.Counterpart, s.Personal)
}

// Match is the classification outcome for a message that passed the filter.
type Match struct {
	Direction   Direction
	Counterpart string // the far-end address that matched
}

// Classify applies the strict two-party rule to the raw From and To header
// values. Only the single first To value is inspected, so group mail where
// the personal address is one of several recipients never matches.
func (s Spec) Classify(fromHeader, toHeader string) (Match, bool) {
	from := bareAddress(fromHeader)
	to := bareAddress(toHeader)

	if s.DomainMode {
		switch {
		case from == s.Personal && strings.HasSuffix(to, s.Counterpart):
			return Match{Direction: DirectionOutbound, Counterpart: to}, true
		case strings.HasSuffix(from, s.Counterpart) && to == s.Personal:
			return Match{Direction: DirectionInbound, Counterpart: from}, true
		}
		return Match{}, false
	}

	switch {
	case from == s.Personal && to == s.Counterpart:
		return Match{Direction: DirectionOutbound, Counterpart: to}, true
	case from == s.Counterpart && to == s.Personal:
		return Match{Direction: DirectionInbound, Counterpart: from}, true
	}
	return Match{}, false
}

// bareAddress strips the display name from an RFC 5322 address header and
// lowercases the result. Headers that fail to parse fall back to the trimmed
// raw value, which then fails to match during classification rather than
// aborting the message.
func bareAddress(header string) string {
	addr, err := mail.ParseAddress(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}
	return strings.ToLower(addr.Address)
}

// headerValue returns the first header with a case-insensitive name match,
// or the empty string.
func headerValue(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
