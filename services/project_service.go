package services

import (
	"shiphaus-platform/models"
	"shiphaus-platform/store"
)

// Role is the authorization capability resolved once at the request
// boundary and passed into every downstream decision point.
type Role struct {
	Admin bool
	// Email is set for any signed-in user; ownership checks compare it to
	// the project's submittedBy.
	Email string
}

// Anonymous is the role of an unauthenticated request.
var Anonymous = Role{}

// ProjectService covers the public project listing and the owner/admin
// mutation surface.
type ProjectService struct {
	Store store.Store
}

func NewProjectService(st store.Store) *ProjectService {
	return &ProjectService{Store: st}
}

// List filters by chapter XOR event; with neither set it returns everything.
func (s *ProjectService) List(chapterID, eventID string) ([]models.Project, error) {
	switch {
	case chapterID != "":
		return s.Store.ProjectsByChapter(chapterID)
	case eventID != "":
		return s.Store.ProjectsByEvent(eventID)
	default:
		return s.Store.ListProjects()
	}
}

func (s *ProjectService) All() ([]models.Project, error) {
	return s.Store.ListProjects()
}

func (s *ProjectService) Get(id string) (*models.Project, error) {
	return s.Store.GetProject(id)
}

// UpdateInput is the owner/admin edit surface. Nil fields stay as they are.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DeployedURL *string `json:"deployedUrl"`
	GithubURL   *string `json:"githubUrl"`
}

// Update edits a project on behalf of role. Admins may edit anything;
// everyone else only their own submissions.
func (s *ProjectService) Update(id string, role Role, in UpdateInput) (*models.Project, error) {
	project, err := s.Store.GetProject(id)
	if err != nil {
		return nil, err
	}
	if !role.Admin && (role.Email == "" || project.SubmittedBy != role.Email) {
		return nil, ErrForbidden
	}
	patch := store.ProjectPatch{
		Title:       in.Title,
		Description: in.Description,
		DeployedURL: in.DeployedURL,
		GithubURL:   in.GithubURL,
	}
	if err := s.Store.UpdateProject(id, patch); err != nil {
		return nil, err
	}
	return s.Store.GetProject(id)
}

// Delete removes a project on behalf of role, same gate as Update.
func (s *ProjectService) Delete(id string, role Role) error {
	project, err := s.Store.GetProject(id)
	if err != nil {
		return err
	}
	if !role.Admin && (role.Email == "" || project.SubmittedBy != role.Email) {
		return ErrForbidden
	}
	return s.Store.DeleteProject(id)
}

// AdminDelete removes a project unconditionally (admin routes are already
// behind the access gate).
func (s *ProjectService) AdminDelete(id string) error {
	return s.Store.DeleteProject(id)
}

// ToggleFeatured flips the featured flag and returns the updated project.
func (s *ProjectService) ToggleFeatured(id string) (*models.Project, error) {
	project, err := s.Store.GetProject(id)
	if err != nil {
		return nil, err
	}
	if err := s.Store.SetProjectFeatured(id, !project.Featured); err != nil {
		return nil, err
	}
	return s.Store.GetProject(id)
}

// Stats is the admin dashboard snapshot.
func (s *ProjectService) Stats() (*store.Stats, error) {
	return s.Store.Stats()
}
