package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const brevoContactsURL = "https://api.brevo.com/v3/contacts"

// BrevoClient syncs lead contacts to Brevo lists. An empty API key makes
// every sync a no-op, mirroring the notifier contract.
type BrevoClient struct {
	apiKey         string
	auditListID    int
	resourceListID int
	client         *http.Client
	baseURL        string
	verbose        bool
}

// NewBrevoClient creates a Brevo client
func NewBrevoClient(apiKey string, auditListID, resourceListID int, verbose bool) *BrevoClient {
	return &BrevoClient{
		apiKey:         apiKey,
		auditListID:    auditListID,
		resourceListID: resourceListID,
		client:         &http.Client{Timeout: 10 * time.Second},
		baseURL:        brevoContactsURL,
		verbose:        verbose,
	}
}

// SyncContact creates or updates a contact for the lead. Sync is best
// effort: failures are logged and never surfaced to the form submitter.
func (b *BrevoClient) SyncContact(ctx context.Context, lead Lead) {
	if b.apiKey == "" {
		return
	}

	var listIDs []int
	switch lead.SubmissionType {
	case "audit":
		if b.auditListID > 0 {
			listIDs = append(listIDs, b.auditListID)
		}
	case "resource":
		if b.resourceListID > 0 {
			listIDs = append(listIDs, b.resourceListID)
		}
	}

	payload := map[string]interface{}{
		"email":         lead.Email,
		"attributes":    map[string]string{"FNAME": lead.FName},
		"updateEnabled": true,
	}
	if len(listIDs) > 0 {
		payload["listIds"] = listIDs
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		if b.verbose {
			fmt.Fprintf(os.Stderr, "Warning: Brevo contact sync error: %v\n", err)
		}
		return
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	default:
		if b.verbose {
			fmt.Fprintf(os.Stderr, "Warning: Brevo contact sync failed: HTTP %d\n", resp.StatusCode)
		}
	}
}
