package audit

import "fmt"

// UpdateEvent represents a credential create or update audit event
type UpdateEvent struct {
	UserID       string
	ClientIP     string
	CredentialID string
	SiteID       string
	Operation    string // "create" or "update"
	Success      bool
	ErrorMessage string
}

func (e UpdateEvent) MessageID() string {
	if e.Operation != "" {
		return e.Operation
	}
	return "update"
}

func (e UpdateEvent) Message() string {
	subject := e.CredentialID
	if subject == "" {
		subject = "a credential for site " + e.SiteID
	}
	if e.Success {
		return fmt.Sprintf("%s %sd %s", e.UserID, e.MessageID(), subject)
	}
	msg := fmt.Sprintf("%s tried to %s %s", e.UserID, e.MessageID(), subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e UpdateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e UpdateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e UpdateEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"credential": e.CredentialID,
			"site":       e.SiteID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.MessageID(),
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
