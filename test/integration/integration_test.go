package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/server/middleware"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

func TestServerEndToEnd(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tc, err := NewTestContext(ctx)
	if err != nil {
		t.Fatalf("Failed to create test context: %v", err)
	}
	defer tc.Close(ctx)

	seedReferenceData(t, tc)

	var credentialID string

	t.Run("whoami resolves the token principal", func(t *testing.T) {
		resp := request(t, tc, "GET", "/whoami", "", "manager@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var body map[string]interface{}
		decodeBody(t, resp, &body)
		if body["email"] != "manager@example.com" {
			t.Errorf("expected manager email, got %v", body["email"])
		}
	})

	t.Run("unregistered principal is rejected", func(t *testing.T) {
		resp := request(t, tc, "GET", "/whoami", "", "stranger@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("viewer sees only the group site", func(t *testing.T) {
		resp := request(t, tc, "GET", "/sites", "", "viewer@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var sites []model.Site
		decodeBody(t, resp, &sites)
		if len(sites) != 1 || sites[0].ID != "h-bayview" {
			t.Errorf("expected only h-bayview, got %+v", sites)
		}
	})

	t.Run("manager creates a credential", func(t *testing.T) {
		body := `{"site_id":"h-bayview","description":"Front desk PMS","username":"frontdesk","secret":"hunter2","category":"PMS"}`
		resp := request(t, tc, "POST", "/credentials", body, "manager@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			raw, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected 201, got %d: %s", resp.StatusCode, raw)
		}

		var created store.Credential
		decodeBody(t, resp, &created)
		credentialID = created.ID

		// The stored secret must not be plaintext
		var encoded string
		tc.DB.Raw(`SELECT encoded_secret FROM credentials WHERE id = ?`, credentialID).Scan(&encoded)
		if encoded == "" || encoded == "hunter2" {
			t.Errorf("secret stored unencoded: %q", encoded)
		}
	})

	t.Run("viewer reads the decoded secret", func(t *testing.T) {
		resp := request(t, tc, "GET", "/sites/h-bayview/credentials", "", "viewer@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var list []store.Credential
		decodeBody(t, resp, &list)
		if len(list) != 1 || list[0].Secret != "hunter2" {
			t.Errorf("expected decoded secret, got %+v", list)
		}
	})

	t.Run("viewer cannot save credentials", func(t *testing.T) {
		body := `{"site_id":"h-bayview","description":"x","username":"y","secret":"z","category":"Other"}`
		resp := request(t, tc, "POST", "/credentials", body, "viewer@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("update appends the prior state to history", func(t *testing.T) {
		body := fmt.Sprintf(`{"id":%q,"description":"Front desk PMS","username":"frontdesk","secret":"rotated","category":"PMS"}`, credentialID)
		resp := request(t, tc, "POST", "/credentials", body, "manager@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
		}

		histResp := request(t, tc, "GET", "/credentials/"+credentialID+"/history", "", "viewer@example.com")
		defer histResp.Body.Close()

		if histResp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", histResp.StatusCode)
		}

		var history []store.HistoryEntry
		decodeBody(t, histResp, &history)
		if len(history) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(history))
		}
		if history[0].Secret != "hunter2" {
			t.Errorf("expected prior secret in history, got %q", history[0].Secret)
		}
		if history[0].ChangedBy != "u-manager" {
			t.Errorf("expected manager as changer, got %q", history[0].ChangedBy)
		}
	})

	t.Run("delete keeps history rows", func(t *testing.T) {
		resp := request(t, tc, "DELETE", "/credentials/"+credentialID, "", "manager@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}

		var count int64
		tc.DB.Raw(`SELECT count(*) FROM credential_history WHERE credential_id = ?`, credentialID).Scan(&count)
		if count != 1 {
			t.Errorf("expected history to survive delete, got %d rows", count)
		}
	})

	t.Run("admin changes a user's access level", func(t *testing.T) {
		resp := request(t, tc, "PUT", "/users/u-viewer/access-level", `{"access_level":"manager"}`, "admin@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("admin cannot change their own access level", func(t *testing.T) {
		resp := request(t, tc, "PUT", "/users/u-admin/access-level", `{"access_level":"viewer"}`, "admin@example.com")
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403, got %d", resp.StatusCode)
		}
	})
}

func seedReferenceData(t *testing.T, tc *TestContext) {
	t.Helper()

	groupID := "g-coastal"
	if err := tc.DB.Create(&model.Group{ID: groupID, Name: "Coastal Properties"}).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}

	sites := []model.Site{
		{ID: "h-bayview", Name: "Bayview Resort", GroupID: &groupID},
		{ID: "h-summit", Name: "Summit Lodge"},
	}
	if err := tc.DB.Create(&sites).Error; err != nil {
		t.Fatalf("failed to seed sites: %v", err)
	}

	users := []model.User{
		{ID: "u-admin", Email: "admin@example.com", Name: "Ada Admin", AccessLevel: model.AccessLevelAdmin},
		{ID: "u-manager", Email: "manager@example.com", Name: "Mark Manager", GroupID: &groupID, AccessLevel: model.AccessLevelManager},
		{ID: "u-viewer", Email: "viewer@example.com", Name: "Vera Viewer", GroupID: &groupID, AccessLevel: model.AccessLevelViewer},
	}
	if err := tc.DB.Create(&users).Error; err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}
}

func request(t *testing.T, tc *TestContext, method, path, body, email string) *http.Response {
	t.Helper()

	token, err := middleware.NewSessionToken(tc.SessionKey, email, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, tc.ServerURL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
