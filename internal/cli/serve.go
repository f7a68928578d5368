package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stijnwollerich/sparksmetrics-website/internal/leads"
	"github.com/stijnwollerich/sparksmetrics-website/internal/notify"
)

var (
	serveAddr string
	dbPath    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lead-capture HTTP API",
	Long: `Serve runs the lead-capture API: audit requests and resource
downloads are validated, stored in SQLite, synced to Brevo and announced
on Slack.

Example:
  sparksmetrics serve
  sparksmetrics serve --addr :9090 --db data/leads.db`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default data/leads.db)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	cfg.Output.Verbose = verbose
	if serveAddr != "" {
		cfg.Leads.Addr = serveAddr
	}
	if dbPath != "" {
		cfg.Leads.DBPath = dbPath
	}
	cfg.Leads.BrevoAPIKey = os.Getenv("BREVO_API_KEY")
	cfg.Leads.AuditListID = envInt("BREVO_AUDIT_LIST_ID")
	cfg.Leads.ResourceListID = envInt("BREVO_CRO_EBOOK_LIST_ID")
	cfg.Site.WebhookURL = os.Getenv("SLACK_WEBHOOK_URL")

	store, err := leads.NewStore(cfg.Leads.DBPath)
	if err != nil {
		return fmt.Errorf("open lead store: %w", err)
	}
	defer store.Close()

	brevo := leads.NewBrevoClient(cfg.Leads.BrevoAPIKey, cfg.Leads.AuditListID, cfg.Leads.ResourceListID, verbose)
	notifier := notify.NewNotifier(cfg.Site.WebhookURL, verbose)

	server := leads.NewServer(cfg.Leads, store, brevo, notifier)

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Leads.Addr)
	return server.Start()
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return 0
	}
	return n
}
