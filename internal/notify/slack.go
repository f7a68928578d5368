// Package notify posts pipeline events to a Slack incoming webhook.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Notifier sends plain-text messages to a Slack incoming webhook. An
// empty webhook URL turns every send into a no-op, so callers never
// need to guard their notification sites.
type Notifier struct {
	webhookURL string
	client     *http.Client
	verbose    bool
}

// NewNotifier creates a notifier for the given webhook URL
func NewNotifier(webhookURL string, verbose bool) *Notifier {
	return &Notifier{
		webhookURL: strings.TrimSpace(webhookURL),
		client:     &http.Client{Timeout: 10 * time.Second},
		verbose:    verbose,
	}
}

// Enabled reports whether a webhook URL is configured
func (n *Notifier) Enabled() bool {
	return n.webhookURL != ""
}

// Send delivers a message to the webhook. Delivery is best effort:
// failures are logged and swallowed so notification problems never
// abort a pipeline run.
func (n *Notifier) Send(text string) {
	if n.webhookURL == "" {
		return
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		if n.verbose {
			fmt.Fprintf(os.Stderr, "Warning: Slack notification failed: %v\n", err)
		}
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && n.verbose {
		fmt.Fprintf(os.Stderr, "Warning: Slack webhook returned %d\n", resp.StatusCode)
	}
}

// Sendf formats and delivers a message
func (n *Notifier) Sendf(format string, args ...interface{}) {
	n.Send(fmt.Sprintf(format, args...))
}
