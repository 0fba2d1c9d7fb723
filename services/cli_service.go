package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"shiphaus-platform/models"
	"shiphaus-platform/store"
	"shiphaus-platform/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	tokenRateWindow  = 5 * time.Minute
	tokenRateMax     = 10
	submitRateWindow = 60 * time.Second
	submitRateMax    = 3
)

// CliService owns the short-lived bearer-token flow: minting, validation,
// single-use redemption, and the trusted direct-to-project submit path.
type CliService struct {
	Store store.Store
	// PublicBaseURL is used for the project link in submit responses and
	// the prompt artifact.
	PublicBaseURL string
}

func NewCliService(st store.Store, publicBaseURL string) *CliService {
	return &CliService{Store: st, PublicBaseURL: publicBaseURL}
}

// MintedToken is the token-issuance response payload.
type MintedToken struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	Prompt    string `json:"prompt"`
}

// MintToken issues a fresh single-use token for user, rate limited per
// source IP (fixed window, anchored to first use).
func (s *CliService) MintToken(user SessionUser, ip, chapterID, eventID string) (*MintedToken, error) {
	count, err := s.Store.IncrCounter("ratelimit:cli-token:"+ip, tokenRateWindow)
	if err != nil {
		return nil, fmt.Errorf("rate counter: %w", err)
	}
	if count > tokenRateMax {
		return nil, ErrRateLimited
	}

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("token entropy: %w", err)
	}
	token := models.CliTokenPrefix + hex.EncodeToString(raw)

	name := user.Name
	if name == "" {
		name = user.Email
	}
	avatar := user.Image
	if avatar == "" {
		avatar = defaultAvatar(name)
	}

	expiresAt := time.Now().Add(models.CliTokenTTL)
	row := &models.CliToken{
		Token:     token,
		Email:     user.Email,
		Name:      name,
		Avatar:    avatar,
		ExpiresAt: expiresAt,
	}
	if err := s.Store.PutCliToken(row); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	return &MintedToken{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		Prompt: utils.BuildCliPrompt(utils.CliPromptParams{
			Token:     token,
			ChapterID: chapterID,
			EventID:   eventID,
			BaseURL:   s.PublicBaseURL,
		}),
	}, nil
}

// ValidateToken checks the namespace prefix and looks the token up.
// Malformed, unknown, and expired tokens all come back as ErrInvalidToken;
// the caller never learns which.
func (s *CliService) ValidateToken(token string) (*models.CliToken, error) {
	if !strings.HasPrefix(token, models.CliTokenPrefix) {
		return nil, ErrInvalidToken
	}
	row, err := s.Store.GetCliToken(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return row, nil
}

// CliSubmitInput is the programmatic submission payload.
type CliSubmitInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	DeployedURL   string `json:"deployedUrl"`
	GithubURL     string `json:"githubUrl"`
	ScreenshotURL string `json:"screenshotUrl"`
	ChapterID     string `json:"chapterId"`
	EventID       string `json:"eventId"`
}

// Submit publishes a project directly from a validated token, consuming the
// token on success. The CLI channel skips the review queue on purpose: the
// token was minted from an authenticated session, which is the trust tier.
func (s *CliService) Submit(token *models.CliToken, ip string, in CliSubmitInput) (*models.Project, string, error) {
	count, err := s.Store.IncrCounter("ratelimit:cli-submit:"+ip, submitRateWindow)
	if err != nil {
		return nil, "", fmt.Errorf("rate counter: %w", err)
	}
	if count > submitRateMax {
		return nil, "", ErrRateLimited
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if len(title) < 3 || len(title) > 100 {
		return nil, "", validationErr("Title must be 3-100 characters.")
	}
	if len(description) < 10 || len(description) > 500 {
		return nil, "", validationErr("Description must be 10-500 characters.")
	}
	if in.DeployedURL == "" || !utils.IsValidURL(in.DeployedURL) {
		return nil, "", validationErr("A valid live URL is required.")
	}
	if in.GithubURL != "" && !utils.IsValidURL(in.GithubURL) {
		return nil, "", validationErr("Invalid source link URL.")
	}
	if in.ScreenshotURL != "" && !utils.IsValidURL(in.ScreenshotURL) {
		return nil, "", validationErr("Invalid screenshot URL.")
	}

	project := &models.Project{
		ID:          "proj-" + uuid.NewString(),
		Title:       title,
		Description: description,
		DeployedURL: strings.TrimSpace(in.DeployedURL),
		GithubURL:   strings.TrimSpace(in.GithubURL),
		CreatedAt:   time.Now(),
		ChapterID:   in.ChapterID,
		EventID:     in.EventID,
		Builder: models.Builder{
			Name:   token.Name,
			Avatar: token.Avatar,
			UID:    slug.Make(token.Name),
		},
		Type:          models.ProjectTypeOther,
		SubmittedBy:   token.Email,
		ScreenshotURL: strings.TrimSpace(in.ScreenshotURL),
	}
	if err := s.Store.CreateProject(project); err != nil {
		return nil, "", fmt.Errorf("create project: %w", err)
	}

	// Mailing-list capture is best-effort; a failure here never fails the
	// submission.
	if err := s.Store.AddSubscriber(token.Email, time.Now()); err != nil {
		log.Printf("⚠️  failed to record subscriber %s: %v", token.Email, err)
	}

	if in.EventID != "" {
		if err := s.Store.IncrementEventProjectCount(in.EventID); err != nil {
			log.Printf("⚠️  failed to bump project count for event %s: %v", in.EventID, err)
		}
	}

	// Single use: the token dies with the successful submit.
	if err := s.Store.DeleteCliToken(token.Token); err != nil {
		log.Printf("⚠️  failed to consume token for %s: %v", token.Email, err)
	}

	url := fmt.Sprintf("%s/chapter/%s", s.PublicBaseURL, project.ChapterID)
	return project, url, nil
}

// Subscribers lists captured emails, newest first (admin view).
func (s *CliService) Subscribers() ([]models.Subscriber, error) {
	return s.Store.ListSubscribers()
}
