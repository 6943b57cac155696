package wallet

import (
	"encoding/hex"
	"strings"
)

// MaxCommitmentBytes is the CashToken NFT commitment size limit.
const MaxCommitmentBytes = 40

// TicketCommitment encodes event/attendee data for the minted ticket. The
// wire format is "event|attendee|uuid8": the event name and attendee name
// are clipped so the whole payload always fits the 40-byte cap, keeping the
// 8-char signup prefix intact for lookups. Returned as the hex string the
// wallet gateway expects.
func TicketCommitment(eventName, attendeeName, signupID string) string {
	id := strings.ReplaceAll(signupID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}

	// 40 bytes total, minus the id and two separators, split between the
	// event name and the attendee name.
	budget := MaxCommitmentBytes - len(id) - 2
	eventBudget := budget * 2 / 3

	event := clipBytes(eventName, eventBudget)
	attendee := clipBytes(attendeeName, budget-len(event))

	payload := event + "|" + attendee + "|" + id
	if len(payload) > MaxCommitmentBytes {
		payload = payload[:MaxCommitmentBytes]
	}

	return hex.EncodeToString([]byte(payload))
}

// clipBytes truncates s to at most n bytes without splitting a UTF-8 rune.
func clipBytes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}

	for n > 0 && (s[n]&0xC0) == 0x80 {
		n--
	}

	return s[:n]
}
