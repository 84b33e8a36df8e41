package audit

import "fmt"

// RoleChangeEvent represents an access-level change audit event
type RoleChangeEvent struct {
	UserID       string
	ClientIP     string
	TargetUserID string
	NewLevel     string
	Success      bool
	ErrorMessage string
}

func (e RoleChangeEvent) MessageID() string {
	return "role-change"
}

func (e RoleChangeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s changed access level of %s to %s", e.UserID, e.TargetUserID, e.NewLevel)
	}
	msg := fmt.Sprintf("%s tried to change access level of %s to %s", e.UserID, e.TargetUserID, e.NewLevel)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RoleChangeEvent) Severity() Severity {
	// Access-level changes are notable even when they succeed
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RoleChangeEvent) Facility() int {
	return FacilityAuth
}

func (e RoleChangeEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"user":  e.TargetUserID,
			"level": e.NewLevel,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "role-change",
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
