package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/archipelago-ops/sitevault/pkg/model"
)

// ErrCredentialNotFound is returned when a credential doesn't exist.
var ErrCredentialNotFound = errors.New("credential not found")

// SecretPlaceholder is substituted for a secret that could not be decoded.
// A corrupt row degrades to this marker instead of failing the whole call.
const SecretPlaceholder = "<secret unreadable>"

// Credential is the decoded view of a stored credential.
type Credential struct {
	ID           string         `json:"id"`
	SiteID       string         `json:"site_id"`
	Description  string         `json:"description"`
	Username     string         `json:"username"`
	Secret       string         `json:"secret"`
	Category     model.Category `json:"category"`
	CreatedBy    string         `json:"created_by"`
	LastEdited   time.Time      `json:"last_edited"`
	LastEditedBy string         `json:"last_edited_by"`
}

// HistoryEntry is the decoded view of a prior credential state.
type HistoryEntry struct {
	ID           string    `json:"id"`
	CredentialID string    `json:"credential_id"`
	Description  string    `json:"description"`
	Username     string    `json:"username"`
	Secret       string    `json:"secret"`
	ChangedBy    string    `json:"changed_by"`
	ChangeDate   time.Time `json:"change_date"`
}

// CredentialDraft carries the caller-supplied fields of a create or
// update. ID is set only on the update path.
type CredentialDraft struct {
	ID          string         `json:"id,omitempty"`
	SiteID      string         `json:"site_id"`
	Description string         `json:"description"`
	Username    string         `json:"username"`
	Secret      string         `json:"secret"`
	Category    model.Category `json:"category"`
}

// ValidationError reports required draft fields that are missing or
// malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid draft: %s", strings.Join(e.Fields, ", "))
}

// Validate checks the required create fields.
func (d CredentialDraft) Validate() error {
	return d.validate(true)
}

// ValidateForUpdate checks the fields an update overwrites. The owning
// site never changes on update, so site_id is not required.
func (d CredentialDraft) ValidateForUpdate() error {
	return d.validate(false)
}

func (d CredentialDraft) validate(requireSite bool) error {
	var bad []string
	if requireSite && d.SiteID == "" {
		bad = append(bad, "site_id")
	}
	if d.Description == "" {
		bad = append(bad, "description")
	}
	if d.Username == "" {
		bad = append(bad, "username")
	}
	if d.Secret == "" {
		bad = append(bad, "secret")
	}
	if !model.ValidCategory(d.Category) {
		bad = append(bad, "category")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// CredentialsStore abstracts credential storage, versioning and history.
type CredentialsStore interface {
	// ListBySite returns all current credentials for a site, secrets
	// decoded. A row whose secret cannot be decoded carries
	// SecretPlaceholder instead of failing the call.
	ListBySite(siteID string) ([]Credential, error)

	// Fetch retrieves a single credential by id.
	// Returns ErrCredentialNotFound if it doesn't exist.
	Fetch(id string) (*Credential, error)

	// Create stores a new credential from the draft, attributed to
	// actorID. The draft must pass Validate.
	Create(draft CredentialDraft, actorID string) (*Credential, error)

	// Update overwrites the credential's fields from the draft and
	// appends a history entry holding the pre-update state. The two
	// effects are atomic: either both are visible, or neither.
	// Returns ErrCredentialNotFound if id doesn't exist.
	Update(id string, draft CredentialDraft, actorID string) (*Credential, error)

	// Delete removes the current row. History rows are retained or
	// cascaded per the store's configuration.
	// Returns ErrCredentialNotFound if id doesn't exist.
	Delete(id string) error

	// History returns prior states of the credential, most recent first.
	// Unknown ids yield an empty slice, never an error.
	History(id string) ([]HistoryEntry, error)
}
