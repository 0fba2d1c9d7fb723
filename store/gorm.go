package store

import (
	"errors"
	"time"

	"shiphaus-platform/models"

	"gorm.io/gorm"
)

// GormStore backs Store with Postgres through GORM. All writes are
// single-statement, so each method is atomic on its own.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates/updates the schema for every platform model.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.Chapter{},
		&models.Event{},
		&models.Submission{},
		&models.Project{},
		&models.CliToken{},
		&models.Subscriber{},
		&models.LeadApplication{},
		&models.RateCounter{},
	)
}

func (s *GormStore) SeedChapters(chapters []models.Chapter) error {
	for i := range chapters {
		if err := s.db.Where("id = ?", chapters[i].ID).FirstOrCreate(&chapters[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *GormStore) ListChapters() ([]models.Chapter, error) {
	var chapters []models.Chapter
	if err := s.db.Order("city ASC").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (s *GormStore) CreateEvent(event *models.Event) error {
	return s.db.Create(event).Error
}

func (s *GormStore) GetEvent(id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *GormStore) ListEvents() ([]models.Event, error) {
	var events []models.Event
	if err := s.db.Order("date DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *GormStore) UpdateEvent(id string, patch EventPatch) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if len(updates) == 0 {
		_, err := s.GetEvent(id)
		return err
	}
	result := s.db.Model(&models.Event{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteEvent(id string) error {
	result := s.db.Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) IncrementEventProjectCount(id string) error {
	return s.db.Model(&models.Event{}).Where("id = ?", id).
		UpdateColumn("project_count", gorm.Expr("project_count + 1")).Error
}

func (s *GormStore) CreateSubmission(sub *models.Submission) error {
	return s.db.Create(sub).Error
}

func (s *GormStore) GetSubmission(id string) (*models.Submission, error) {
	var sub models.Submission
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *GormStore) PendingSubmissions() ([]models.Submission, error) {
	var subs []models.Submission
	if err := s.db.Where("status = ?", models.SubmissionStatusPending).
		Order("submitted_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *GormStore) ClaimSubmission(id string) (bool, error) {
	result := s.db.Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, models.SubmissionStatusPending).
		Update("status", models.SubmissionStatusApproved)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *GormStore) SetSubmissionProject(id, projectID string) error {
	return s.db.Model(&models.Submission{}).Where("id = ?", id).
		Update("project_id", projectID).Error
}

func (s *GormStore) DeleteSubmission(id string) error {
	// Reject is idempotent: deleting an already-gone submission is fine.
	return s.db.Delete(&models.Submission{}, "id = ?", id).Error
}

func (s *GormStore) CreateProject(project *models.Project) error {
	return s.db.Create(project).Error
}

func (s *GormStore) GetProject(id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (s *GormStore) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *GormStore) ProjectsByChapter(chapterID string) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Where("chapter_id = ?", chapterID).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *GormStore) ProjectsByEvent(eventID string) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Where("event_id = ?", eventID).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *GormStore) UpdateProject(id string, patch ProjectPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.DeployedURL != nil {
		updates["deployed_url"] = *patch.DeployedURL
	}
	if patch.GithubURL != nil {
		updates["github_url"] = *patch.GithubURL
	}
	if len(updates) == 0 {
		_, err := s.GetProject(id)
		return err
	}
	result := s.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) SetProjectFeatured(id string, featured bool) error {
	result := s.db.Model(&models.Project{}).Where("id = ?", id).
		Update("featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteProject(id string) error {
	result := s.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Stats() (*Stats, error) {
	var stats Stats
	if err := s.db.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Project{}).Where("featured = ?", true).
		Count(&stats.FeaturedProjects).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Event{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Submission{}).
		Where("status = ?", models.SubmissionStatusPending).
		Count(&stats.PendingSubmissions).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *GormStore) PutCliToken(token *models.CliToken) error {
	return s.db.Create(token).Error
}

func (s *GormStore) GetCliToken(token string) (*models.CliToken, error) {
	// Expiry is enforced in the query so a lapsed token fails identically to
	// a never-issued one, whether or not the reaper has run.
	var row models.CliToken
	if err := s.db.Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) DeleteCliToken(token string) error {
	return s.db.Delete(&models.CliToken{}, "token = ?", token).Error
}

func (s *GormStore) AddSubscriber(email string, at time.Time) error {
	sub := models.Subscriber{Email: email, Timestamp: at}
	return s.db.Where("email = ?", email).FirstOrCreate(&sub).Error
}

func (s *GormStore) ListSubscribers() ([]models.Subscriber, error) {
	var subs []models.Subscriber
	if err := s.db.Order("timestamp DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *GormStore) CreateLead(lead *models.LeadApplication) error {
	return s.db.Create(lead).Error
}

func (s *GormStore) IncrCounter(key string, window time.Duration) (int64, error) {
	// Single upsert: first hit in a window inserts count=1 and anchors the
	// window end; hits inside the window only increment; a hit after the
	// window lapsed resets both. Concurrent first requests cannot each set a
	// fresh window because the statement is atomic.
	var count int64
	err := s.db.Raw(`
		INSERT INTO rate_counters (key, count, window_ends_at)
		VALUES (?, 1, ?)
		ON CONFLICT (key) DO UPDATE SET
			count = CASE WHEN rate_counters.window_ends_at <= now()
				THEN 1 ELSE rate_counters.count + 1 END,
			window_ends_at = CASE WHEN rate_counters.window_ends_at <= now()
				THEN EXCLUDED.window_ends_at ELSE rate_counters.window_ends_at END
		RETURNING count
	`, key, time.Now().Add(window)).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *GormStore) PurgeExpired(now time.Time) (int64, error) {
	tokens := s.db.Delete(&models.CliToken{}, "expires_at <= ?", now)
	if tokens.Error != nil {
		return 0, tokens.Error
	}
	counters := s.db.Delete(&models.RateCounter{}, "window_ends_at <= ?", now)
	if counters.Error != nil {
		return tokens.RowsAffected, counters.Error
	}
	return tokens.RowsAffected + counters.RowsAffected, nil
}
