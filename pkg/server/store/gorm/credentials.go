package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/archipelago-ops/sitevault/pkg/audit"
	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/secretbox"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

// Ensure CredentialsStore implements store.CredentialsStore
var _ store.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore implements store.CredentialsStore using GORM
type CredentialsStore struct {
	db    *gorm.DB
	codec secretbox.Codec

	// retainHistory keeps history rows when their credential is deleted
	retainHistory bool
}

// NewCredentialsStore creates a new CredentialsStore
func NewCredentialsStore(db *gorm.DB, codec secretbox.Codec, retainHistory bool) *CredentialsStore {
	return &CredentialsStore{db: db, codec: codec, retainHistory: retainHistory}
}

// ListBySite returns all current credentials for a site, secrets decoded.
func (s *CredentialsStore) ListBySite(siteID string) ([]store.Credential, error) {
	var rows []model.Credential
	tx := s.db.Where("site_id = ?", siteID).Order("last_edited desc").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	result := make([]store.Credential, 0, len(rows))
	for _, row := range rows {
		result = append(result, s.toCredential(row))
	}
	return result, nil
}

// Fetch retrieves a single credential by id.
func (s *CredentialsStore) Fetch(id string) (*store.Credential, error) {
	var row model.Credential
	tx := s.db.Where("id = ?", id).First(&row)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrCredentialNotFound
		}
		return nil, tx.Error
	}

	cred := s.toCredential(row)
	return &cred, nil
}

// Create stores a new credential from the draft, attributed to actorID.
func (s *CredentialsStore) Create(draft store.CredentialDraft, actorID string) (*store.Credential, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	id := model.NewID()
	encoded, err := s.codec.Encode(id, draft.Secret)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := model.Credential{
		ID:            id,
		SiteID:        draft.SiteID,
		Description:   draft.Description,
		Username:      draft.Username,
		EncodedSecret: encoded,
		Category:      draft.Category,
		CreatedBy:     actorID,
		LastEdited:    now,
		LastEditedBy:  actorID,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}

	cred := s.toCredential(row)
	return &cred, nil
}

// Update overwrites the credential and appends a history entry holding its
// pre-update state. Both effects happen in one transaction, with the row
// locked so concurrent updates on the same id serialize.
func (s *CredentialsStore) Update(id string, draft store.CredentialDraft, actorID string) (*store.Credential, error) {
	if err := draft.ValidateForUpdate(); err != nil {
		return nil, err
	}

	var updated model.Credential
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var row model.Credential
		find := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row)
		if find.Error != nil {
			if errors.Is(find.Error, gorm.ErrRecordNotFound) {
				return store.ErrCredentialNotFound
			}
			return find.Error
		}

		// Rows imported from the legacy store may predate edit stamps.
		changedBy := row.LastEditedBy
		if changedBy == "" {
			changedBy = row.CreatedBy
		}

		entry := model.CredentialHistory{
			ID:            model.NewID(),
			CredentialID:  row.ID,
			Description:   row.Description,
			Username:      row.Username,
			EncodedSecret: row.EncodedSecret,
			ChangedBy:     changedBy,
			ChangeDate:    row.LastEdited,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		encoded, err := s.codec.Encode(row.ID, draft.Secret)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"description":    draft.Description,
			"username":       draft.Username,
			"encoded_secret": encoded,
			"category":       draft.Category,
			"last_edited":    now,
			"last_edited_by": actorID,
		}
		if err := tx.Model(&model.Credential{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		updated = row
		updated.Description = draft.Description
		updated.Username = draft.Username
		updated.EncodedSecret = encoded
		updated.Category = draft.Category
		updated.LastEdited = now
		updated.LastEditedBy = actorID
		return nil
	})
	if err != nil {
		return nil, err
	}

	cred := s.toCredential(updated)
	return &cred, nil
}

// Delete removes the current row. History rows are kept unless the store
// was configured to cascade.
func (s *CredentialsStore) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		del := tx.Where("id = ?", id).Delete(&model.Credential{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return store.ErrCredentialNotFound
		}

		if !s.retainHistory {
			if err := tx.Where("credential_id = ?", id).Delete(&model.CredentialHistory{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// History returns prior states of the credential, most recent first.
func (s *CredentialsStore) History(id string) ([]store.HistoryEntry, error) {
	var rows []model.CredentialHistory
	tx := s.db.Where("credential_id = ?", id).Order("change_date desc").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	result := make([]store.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, store.HistoryEntry{
			ID:           row.ID,
			CredentialID: row.CredentialID,
			Description:  row.Description,
			Username:     row.Username,
			Secret:       s.decodeOrPlaceholder(row.CredentialID, row.EncodedSecret),
			ChangedBy:    row.ChangedBy,
			ChangeDate:   row.ChangeDate,
		})
	}
	return result, nil
}

func (s *CredentialsStore) toCredential(row model.Credential) store.Credential {
	return store.Credential{
		ID:           row.ID,
		SiteID:       row.SiteID,
		Description:  row.Description,
		Username:     row.Username,
		Secret:       s.decodeOrPlaceholder(row.ID, row.EncodedSecret),
		Category:     row.Category,
		CreatedBy:    row.CreatedBy,
		LastEdited:   row.LastEdited,
		LastEditedBy: row.LastEditedBy,
	}
}

// decodeOrPlaceholder degrades a corrupt row to the placeholder marker so
// one bad secret cannot abort a whole listing.
func (s *CredentialsStore) decodeOrPlaceholder(scope, encoded string) string {
	plain, err := s.codec.Decode(scope, encoded)
	if err != nil {
		audit.Log(audit.DecodeFailureEvent{
			CredentialID: scope,
			Reason:       err.Error(),
		})
		return store.SecretPlaceholder
	}
	return plain
}
