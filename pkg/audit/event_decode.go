package audit

import "fmt"

// DecodeFailureEvent records a stored secret that could not be decoded.
// The row is served with a placeholder secret; this event is the only
// trace of the corruption.
type DecodeFailureEvent struct {
	CredentialID string
	Reason       string
}

func (e DecodeFailureEvent) MessageID() string {
	return "decode"
}

func (e DecodeFailureEvent) Message() string {
	msg := fmt.Sprintf("failed to decode secret for credential %s", e.CredentialID)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e DecodeFailureEvent) Severity() Severity {
	return SeverityWarning
}

func (e DecodeFailureEvent) Facility() int {
	return FacilityAuthPriv
}

func (e DecodeFailureEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"resource": e.CredentialID,
		},
		SDIDAction: {
			"operation": "decode",
			"result":    "failure",
		},
	}
}
