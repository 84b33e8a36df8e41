package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := LoginEvent{
		Principal: "alice@globalresorts.com",
		UserID:    "u1",
		ClientIP:  "192.168.1.1",
		Success:   true,
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.Contains(output, "sitevault") {
		t.Error("Expected app name 'sitevault' in output")
	}
	if !strings.Contains(output, "login") {
		t.Error("Expected message ID 'login' in output")
	}
	if !strings.Contains(output, "alice@globalresorts.com") {
		t.Error("Expected principal in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "logged in as u1") {
		t.Error("Expected success message in output")
	}
	if !strings.HasPrefix(output, "<") {
		t.Error("Expected RFC5424 PRI prefix in output")
	}
}

func TestLoginEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     LoginEvent
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name: "successful login",
			event: LoginEvent{
				Principal: "alice@globalresorts.com",
				UserID:    "u1",
				ClientIP:  "10.0.0.1",
				Success:   true,
			},
			wantMsg:   "logged in as u1",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuth,
			wantMsgID: "login",
		},
		{
			name: "unregistered principal",
			event: LoginEvent{
				Principal:    "mallory@example.com",
				ClientIP:     "10.0.0.1",
				Success:      false,
				ErrorMessage: "not registered",
			},
			wantMsg:   "failed to log in: not registered",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuth,
			wantMsgID: "login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want substring %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %d, want %d", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != tt.wantFac {
				t.Errorf("Facility() = %d, want %d", tt.event.Facility(), tt.wantFac)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %q, want %q", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestUpdateEventOperations(t *testing.T) {
	create := UpdateEvent{
		UserID:    "u2",
		SiteID:    "h1",
		Operation: "create",
		Success:   true,
	}
	if create.MessageID() != "create" {
		t.Errorf("MessageID() = %q, want create", create.MessageID())
	}
	if !strings.Contains(create.Message(), "created") {
		t.Errorf("Message() = %q, want created", create.Message())
	}

	update := UpdateEvent{
		UserID:       "u2",
		CredentialID: "c1",
		Success:      false,
		ErrorMessage: "permission denied",
	}
	if update.MessageID() != "update" {
		t.Errorf("MessageID() = %q, want update", update.MessageID())
	}
	if !strings.Contains(update.Message(), "tried to update c1: permission denied") {
		t.Errorf("Message() = %q", update.Message())
	}
}

func TestDecodeFailureEvent(t *testing.T) {
	event := DecodeFailureEvent{CredentialID: "c2", Reason: "ciphertext too short"}

	if event.MessageID() != "decode" {
		t.Errorf("MessageID() = %q, want decode", event.MessageID())
	}
	if event.Severity() != SeverityWarning {
		t.Errorf("Severity() = %d, want warning", event.Severity())
	}
	if !strings.Contains(event.Message(), "failed to decode secret for credential c2: ciphertext too short") {
		t.Errorf("Message() = %q", event.Message())
	}
	if event.StructuredData()[SDIDAction]["result"] != "failure" {
		t.Errorf("StructuredData() action result = %q, want failure", event.StructuredData()[SDIDAction]["result"])
	}
}

func TestRoleChangeEventSeverity(t *testing.T) {
	ok := RoleChangeEvent{UserID: "admin", TargetUserID: "u3", NewLevel: "manager", Success: true}
	if ok.Severity() != SeverityNotice {
		t.Errorf("Severity() = %d, want notice", ok.Severity())
	}

	denied := RoleChangeEvent{UserID: "admin", TargetUserID: "admin", NewLevel: "viewer"}
	if denied.Severity() != SeverityWarning {
		t.Errorf("Severity() = %d, want warning", denied.Severity())
	}
}

func TestStructuredDataEscaping(t *testing.T) {
	escaped := escapeSDValue(`va"l\ue]`)
	if escaped != `"va\"l\\ue\]"` {
		t.Errorf("escapeSDValue() = %s", escaped)
	}
}
