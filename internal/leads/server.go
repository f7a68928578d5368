package leads

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
	"github.com/stijnwollerich/sparksmetrics-website/internal/notify"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// resourceDownloads maps resource slugs to downloadable files. New
// resources are added here.
var resourceDownloads = map[string]string{
	"cro-checklist": "13-bulletproof-strategies-conversions-sparksmetrics.pdf",
}

// Server is the lead-capture HTTP API
type Server struct {
	echo     *echo.Echo
	store    *Store
	brevo    *BrevoClient
	notifier *notify.Notifier
	cfg      model.LeadsConfig
}

// NewServer wires the echo application with the store, Brevo sync and
// Slack notifications
func NewServer(cfg model.LeadsConfig, store *Store, brevo *BrevoClient, notifier *notify.Notifier) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Server{
		echo:     e,
		store:    store,
		brevo:    brevo,
		notifier: notifier,
		cfg:      cfg,
	}

	e.GET("/healthz", s.handleHealth)
	e.POST("/api/request-audit", s.handleRequestAudit)
	e.POST("/api/download-resource", s.handleDownloadResource)

	return s
}

// Start runs the server on the configured address, blocking until
// shutdown
func (s *Server) Start() error {
	return s.echo.Start(s.cfg.Addr)
}

// Echo exposes the underlying echo instance for tests
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

type leadRequest struct {
	FName    string `json:"fname"`
	Email    string `json:"email"`
	Resource string `json:"resource"`
}

type leadResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRequestAudit(c echo.Context) error {
	req, errMsg := s.bindLead(c)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, leadResponse{Success: false, Error: errMsg})
	}

	lead := Lead{
		FName:          req.FName,
		Email:          req.Email,
		SubmissionType: "audit",
	}
	s.persist(c, lead, "Free CRO audit")

	return c.JSON(http.StatusOK, leadResponse{Success: true})
}

func (s *Server) handleDownloadResource(c echo.Context) error {
	req, errMsg := s.bindLead(c)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, leadResponse{Success: false, Error: errMsg})
	}

	filename, ok := resourceDownloads[req.Resource]
	if !ok {
		return c.JSON(http.StatusBadRequest, leadResponse{Success: false, Error: "Unknown resource"})
	}

	lead := Lead{
		FName:          req.FName,
		Email:          req.Email,
		SubmissionType: "resource",
		ResourceSlug:   req.Resource,
	}
	label := "Resource download"
	if req.Resource == "cro-checklist" {
		label = "CRO ebook download"
	}
	s.persist(c, lead, label)

	downloadURL := strings.TrimRight(s.cfg.ResourceBaseURL, "/") + "/" + filename
	return c.JSON(http.StatusOK, leadResponse{Success: true, DownloadURL: downloadURL})
}

// bindLead decodes and validates the common lead fields. Returns a
// non-empty message for a 400 response.
func (s *Server) bindLead(c echo.Context) (leadRequest, string) {
	var req leadRequest
	if err := c.Bind(&req); err != nil {
		return req, "Invalid request body"
	}
	req.FName = strings.TrimSpace(req.FName)
	req.Email = strings.TrimSpace(req.Email)
	req.Resource = strings.TrimSpace(req.Resource)

	if req.FName == "" {
		return req, "First name required"
	}
	if req.Email == "" || !emailRe.MatchString(req.Email) {
		return req, "Invalid email"
	}
	return req, ""
}

// persist stores the lead and fires the best-effort side channels. A
// failed insert is logged by echo, never returned to the submitter.
func (s *Server) persist(c echo.Context, lead Lead, label string) {
	ctx := c.Request().Context()

	if s.store != nil {
		if _, err := s.store.InsertLead(ctx, lead); err != nil {
			c.Logger().Warnf("failed to save lead: %v", err)
		}
	}
	if s.brevo != nil {
		s.brevo.SyncContact(ctx, lead)
	}
	if s.notifier != nil {
		s.notifier.Sendf("New lead: *%s* <%s> - %s", lead.FName, lead.Email, label)
	}
}
