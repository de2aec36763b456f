package services

import (
	"context"
	"errors"
	"fmt"

	"codebliss/internal/apperror"
	"codebliss/internal/models"

	"gorm.io/gorm"
)

const (
	MsgProjectNotFound = "Oops! The project you're looking for cannot be found. Please check the project ID and try again."
	MsgCannotUpdate    = "Sorry, you don't have permission to update this project."
	MsgCannotDelete    = "Sorry, you don't have permission to delete this project."
	MsgCannotForkOwn   = "It looks like you're trying to fork your own project. You can only fork projects created by others."
)

// ProjectService owns project persistence and the ownership rules. Writes
// are last-write-wins: there is no version column.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(ctx context.Context, userID, name string) (*models.Project, error) {
	project := &models.Project{
		Name:   name,
		Code:   StarterCode(),
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Fetch is not ownership gated: anyone signed in who knows the id can read.
func (s *ProjectService) Fetch(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("id = ?", projectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(MsgProjectNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return &project, nil
}

// ListByOwner returns summaries, most recently updated first.
func (s *ProjectService) ListByOwner(ctx context.Context, userID string) ([]models.ProjectSummary, error) {
	summaries := make([]models.ProjectSummary, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("id", "name", "created_at", "updated_at").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return summaries, nil
}

// UpdateCode replaces all three sources; a field the caller left out is
// stored as an empty string.
func (s *ProjectService) UpdateCode(ctx context.Context, userID, projectID string, code models.Code) (*models.Project, error) {
	project, err := s.owned(ctx, userID, projectID, MsgCannotUpdate)
	if err != nil {
		return nil, err
	}

	project.Code = code
	if err := s.write(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) UpdateName(ctx context.Context, userID, projectID, name string) (*models.Project, error) {
	project, err := s.owned(ctx, userID, projectID, MsgCannotUpdate)
	if err != nil {
		return nil, err
	}

	project.Name = name
	if err := s.write(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	project, err := s.owned(ctx, userID, projectID, MsgCannotDelete)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", project.ID).Error; err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// Fork copies name and code into a new project owned by userID. Forking
// one's own project is rejected.
func (s *ProjectService) Fork(ctx context.Context, userID, projectID string) (*models.Project, error) {
	source, err := s.Fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if source.UserID == userID {
		return nil, apperror.BadRequest(MsgCannotForkOwn)
	}

	fork := &models.Project{
		Name:   source.Name,
		Code:   source.Code,
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(fork).Error; err != nil {
		return nil, err
	}
	return fork, nil
}

// write updates the mutable columns of an existing row. A row deleted since
// it was loaded is reported as NotFound, never recreated.
func (s *ProjectService) write(ctx context.Context, project *models.Project) error {
	res := s.db.WithContext(ctx).
		Model(project).
		Select("name", "code_html", "code_css", "code_javascript", "updated_at").
		Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(MsgProjectNotFound)
	}
	return nil
}

func (s *ProjectService) owned(ctx context.Context, userID, projectID, deniedMsg string) (*models.Project, error) {
	project, err := s.Fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, apperror.Unauthorized(deniedMsg)
	}
	return project, nil
}
