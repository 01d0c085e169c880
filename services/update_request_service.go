package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"partner-portal-api/models"

	"gorm.io/gorm"
)

type updateRequestRepository interface {
	ProjectOwned(projectID uint, orgID string) (bool, error)
	Create(req *models.UpdateRequest) error
	FindByID(id uint) (*models.UpdateRequest, error)
	ListPending() ([]models.UpdateRequest, error)
	// ApplyDecision moves the request out of pending. A non-nil input means
	// approval: the target project is overwritten with the payload and the
	// status flips inside one transaction, so there is no observable window
	// where one happened without the other. Returns false when the request was
	// no longer pending.
	ApplyDecision(req *models.UpdateRequest, input *models.ProjectInput, decidedAt time.Time) (bool, error)
}

// UpdateRequestService holds partner-proposed project edits until a reviewer
// approves or rejects them. pending -> approved | rejected, terminal either way.
type UpdateRequestService struct {
	repo updateRequestRepository
}

func NewUpdateRequestService(db *gorm.DB) *UpdateRequestService {
	return &UpdateRequestService{repo: &gormUpdateRequestRepository{db: db}}
}

// Submit queues a replacement payload for a project the caller owns. The
// payload is normalized like a direct edit would be, then stored verbatim.
func (s *UpdateRequestService) Submit(orgID string, projectID uint, payload models.ProjectInput) (*models.UpdateRequest, error) {
	owned, err := s.repo.ProjectOwned(projectID, orgID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, fmt.Errorf("%w: project %d", ErrNotFound, projectID)
	}

	normalized, err := payload.Normalized()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}

	req := &models.UpdateRequest{
		OrgID:     orgID,
		ProjectID: projectID,
		Payload:   raw,
		Status:    models.UpdateStatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Decide settles a pending request. Approval applies the stored payload to the
// target project and flips the status as one atomic unit; rejection only flips
// the status. Either outcome stamps decided_at and is final.
func (s *UpdateRequestService) Decide(requestID uint, outcome string) (*models.UpdateRequest, error) {
	if outcome != models.UpdateStatusApproved && outcome != models.UpdateStatusRejected {
		return nil, fmt.Errorf("%w: outcome must be %q or %q", ErrInvalidInput,
			models.UpdateStatusApproved, models.UpdateStatusRejected)
	}

	req, err := s.repo.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: update request %d", ErrNotFound, requestID)
	}
	if req.Status != models.UpdateStatusPending {
		return nil, fmt.Errorf("%w: request already %s", ErrInvalidInput, req.Status)
	}

	var input *models.ProjectInput
	if outcome == models.UpdateStatusApproved {
		decoded, err := req.PayloadInput()
		if err != nil {
			return nil, fmt.Errorf("stored payload for request %d is unreadable: %w", requestID, err)
		}
		input = &decoded
	}

	decidedAt := time.Now()
	applied, err := s.repo.ApplyDecision(req, input, decidedAt)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost the race against a concurrent decision.
		return nil, fmt.Errorf("%w: request already decided", ErrInvalidInput)
	}

	req.Status = outcome
	req.DecidedAt = &decidedAt
	return req, nil
}

// ListPending returns undecided requests in FIFO review order.
func (s *UpdateRequestService) ListPending() ([]models.UpdateRequest, error) {
	return s.repo.ListPending()
}

var errAlreadyDecided = errors.New("update request already decided")

type gormUpdateRequestRepository struct {
	db *gorm.DB
}

func (r *gormUpdateRequestRepository) ProjectOwned(projectID uint, orgID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("project_id = ? AND org_id = ?", projectID, orgID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormUpdateRequestRepository) Create(req *models.UpdateRequest) error {
	return r.db.Create(req).Error
}

func (r *gormUpdateRequestRepository) FindByID(id uint) (*models.UpdateRequest, error) {
	var req models.UpdateRequest
	if err := r.db.Where("request_id = ?", id).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *gormUpdateRequestRepository) ListPending() ([]models.UpdateRequest, error) {
	var reqs []models.UpdateRequest
	err := r.db.Where("status = ?", models.UpdateStatusPending).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *gormUpdateRequestRepository) ApplyDecision(req *models.UpdateRequest, input *models.ProjectInput, decidedAt time.Time) (bool, error) {
	status := models.UpdateStatusRejected
	if input != nil {
		status = models.UpdateStatusApproved
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if input != nil {
			var project models.Project
			if err := tx.Where("project_id = ?", req.ProjectID).First(&project).Error; err != nil {
				return err
			}
			project.ApplyInput(*input)
			project.UpdatedAt = &decidedAt
			if err := tx.Save(&project).Error; err != nil {
				return err
			}
		}

		// The pending guard makes the transition one-way even under
		// concurrent decisions; zero rows means someone else got there first
		// and the project overwrite above is rolled back with us.
		res := tx.Model(&models.UpdateRequest{}).
			Where("request_id = ? AND status = ?", req.RequestID, models.UpdateStatusPending).
			Updates(map[string]interface{}{
				"status":     status,
				"decided_at": decidedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyDecided
		}
		return nil
	})
	if errors.Is(err, errAlreadyDecided) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
