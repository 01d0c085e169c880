package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"partner-portal-api/models"
	"partner-portal-api/utils"

	"gorm.io/gorm"
)

type accountRepository interface {
	FindByID(orgID string) (*models.Organization, error)
	FindByName(orgName string) (*models.Organization, error)
	EmailTakenByOther(email, excludeOrgID string) (bool, error)
	Create(org *models.Organization) error
	Save(org *models.Organization) error
	List() ([]models.Organization, error)
}

// AccountService owns the organization account lifecycle: claim, activation,
// authentication and credential resets.
type AccountService struct {
	repo     accountRepository
	notifier CredentialNotifier
}

func NewAccountService(db *gorm.DB, notifier CredentialNotifier) *AccountService {
	return &AccountService{repo: &gormAccountRepository{db: db}, notifier: notifier}
}

// RegisterInput carries the self-registration form fields.
type RegisterInput struct {
	OrgName      string  `json:"org_name" binding:"required"`
	OrgNameFull  string  `json:"org_name_full" binding:"required"`
	OrgType      string  `json:"org_type" binding:"required"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactEmail string  `json:"contact_email" binding:"required"`
	ContactPhone *string `json:"contact_phone,omitempty"`
}

// Register claims an unclaimed organization or creates a new one. An org name
// that already carries a credential cannot be claimed again.
func (s *AccountService) Register(input RegisterInput, rawPassword string) (*models.Organization, error) {
	if ok, msg := utils.ValidatePassword(rawPassword); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
	input.ContactEmail = utils.SanitizeInput(input.ContactEmail)
	if !utils.ValidateEmail(input.ContactEmail) {
		return nil, fmt.Errorf("%w: invalid contact email", ErrInvalidInput)
	}
	input.OrgName = utils.SanitizeInput(input.OrgName)
	if input.OrgName == "" {
		return nil, fmt.Errorf("%w: organization name is required", ErrInvalidInput)
	}

	existing, err := s.repo.FindByName(input.OrgName)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.HasCredential() {
		return nil, fmt.Errorf("%w: organization %q is already registered", ErrConflict, input.OrgName)
	}

	// The contact email may only be reused by the organization that already
	// owns it.
	excludeID := ""
	if existing != nil {
		excludeID = existing.OrgID
	}
	taken, err := s.repo.EmailTakenByOther(input.ContactEmail, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: contact email already in use", ErrConflict)
	}

	hash, err := utils.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// Claim: the reviewer pre-created this account without a credential.
		existing.OrgNameFull = input.OrgNameFull
		existing.OrgType = input.OrgType
		existing.ContactName = input.ContactName
		existing.ContactEmail = input.ContactEmail
		existing.ContactPhone = input.ContactPhone
		existing.Password = &hash
		existing.IsActivated = true
		if err := s.repo.Save(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	org := &models.Organization{
		OrgID:        models.NewOrgID(),
		OrgName:      input.OrgName,
		OrgNameFull:  input.OrgNameFull,
		OrgType:      input.OrgType,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Password:     &hash,
		IsActivated:  true,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(org); err != nil {
		return nil, err
	}
	return org, nil
}

// Authenticate verifies an organization credential. Absent accounts, unclaimed
// accounts and wrong passwords all fail identically; deactivated accounts fail
// with ErrForbidden even when the credential is correct.
func (s *AccountService) Authenticate(orgID, password string) (*models.Organization, error) {
	org, err := s.repo.FindByID(orgID)
	if err != nil {
		return nil, err
	}
	if org == nil || !org.HasCredential() || !utils.CheckPasswordHash(password, *org.Password) {
		return nil, ErrUnauthorized
	}
	if !org.IsActivated {
		return nil, ErrForbidden
	}
	return org, nil
}

// SetActivation enables or disables an account. Repeating the current state is
// a no-op.
func (s *AccountService) SetActivation(orgID string, active bool) error {
	org, err := s.repo.FindByID(orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return fmt.Errorf("%w: organization %s", ErrNotFound, orgID)
	}
	if org.IsActivated == active {
		return nil
	}
	org.IsActivated = active
	return s.repo.Save(org)
}

// ResetCredential replaces the account credential with a fresh random one and
// returns the plaintext exactly once. The plaintext is mailed to the contact
// address; mail failure never rolls the reset back.
func (s *AccountService) ResetCredential(orgID string) (string, error) {
	org, err := s.repo.FindByID(orgID)
	if err != nil {
		return "", err
	}
	if org == nil {
		return "", fmt.Errorf("%w: organization %s", ErrNotFound, orgID)
	}
	if strings.TrimSpace(org.ContactEmail) == "" {
		return "", fmt.Errorf("%w: organization has no contact email on file", ErrInvalidInput)
	}

	plaintext, err := utils.GeneratePassword(12)
	if err != nil {
		return "", err
	}
	hash, err := utils.HashPassword(plaintext)
	if err != nil {
		return "", err
	}
	org.Password = &hash
	if err := s.repo.Save(org); err != nil {
		return "", err
	}

	s.notifier.SendCredential(*org, plaintext)
	return plaintext, nil
}

// CreateManaged creates a reviewer-initiated account with a generated
// credential, immediately activated. Returns the plaintext alongside the
// organization so the reviewer can hand it over out of band.
func (s *AccountService) CreateManaged(input RegisterInput) (*models.Organization, string, error) {
	input.ContactEmail = utils.SanitizeInput(input.ContactEmail)
	if !utils.ValidateEmail(input.ContactEmail) {
		return nil, "", fmt.Errorf("%w: invalid contact email", ErrInvalidInput)
	}
	input.OrgName = utils.SanitizeInput(input.OrgName)
	if input.OrgName == "" {
		return nil, "", fmt.Errorf("%w: organization name is required", ErrInvalidInput)
	}

	existing, err := s.repo.FindByName(input.OrgName)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: organization %q already exists", ErrConflict, input.OrgName)
	}

	plaintext, err := utils.GeneratePassword(12)
	if err != nil {
		return nil, "", err
	}
	hash, err := utils.HashPassword(plaintext)
	if err != nil {
		return nil, "", err
	}

	org := &models.Organization{
		OrgID:        models.NewOrgID(),
		OrgName:      input.OrgName,
		OrgNameFull:  input.OrgNameFull,
		OrgType:      input.OrgType,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Password:     &hash,
		IsActivated:  true,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(org); err != nil {
		return nil, "", err
	}

	s.notifier.SendCredential(*org, plaintext)
	return org, plaintext, nil
}

// ChangePassword lets an authenticated organization rotate its own credential.
func (s *AccountService) ChangePassword(orgID, currentPassword, newPassword string) error {
	org, err := s.repo.FindByID(orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return fmt.Errorf("%w: organization %s", ErrNotFound, orgID)
	}
	if !org.HasCredential() || !utils.CheckPasswordHash(currentPassword, *org.Password) {
		return ErrUnauthorized
	}
	if ok, msg := utils.ValidatePassword(newPassword); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	org.Password = &hash
	return s.repo.Save(org)
}

// Get returns one organization by id.
func (s *AccountService) Get(orgID string) (*models.Organization, error) {
	org, err := s.repo.FindByID(orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, fmt.Errorf("%w: organization %s", ErrNotFound, orgID)
	}
	return org, nil
}

// ListOrganizations returns all organizations for the reviewer listing.
func (s *AccountService) ListOrganizations() ([]models.Organization, error) {
	return s.repo.List()
}

type gormAccountRepository struct {
	db *gorm.DB
}

func (r *gormAccountRepository) FindByID(orgID string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("org_id = ?", orgID).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *gormAccountRepository) FindByName(orgName string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("org_name = ?", orgName).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *gormAccountRepository) EmailTakenByOther(email, excludeOrgID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).
		Where("contact_email = ? AND org_id <> ?", email, excludeOrgID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormAccountRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

func (r *gormAccountRepository) Save(org *models.Organization) error {
	return r.db.Save(org).Error
}

func (r *gormAccountRepository) List() ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.Order("created_at DESC").Find(&orgs).Error
	return orgs, err
}
