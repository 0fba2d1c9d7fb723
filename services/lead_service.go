package services

import (
	"fmt"
	"time"

	"shiphaus-platform/models"
	"shiphaus-platform/store"
	"shiphaus-platform/utils"

	"github.com/google/uuid"
)

// LeadService handles chapter-lead applications.
type LeadService struct {
	Store store.Store
}

func NewLeadService(st store.Store) *LeadService {
	return &LeadService{Store: st}
}

type LeadInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	City         string `json:"city"`
	Twitter      string `json:"twitter"`
	Linkedin     string `json:"linkedin"`
	WhatYouBuild string `json:"whatYouBuild"`
	Why          string `json:"why"`
	WhoYouInvite string `json:"whoYouInvite"`
}

// Apply validates and stores a chapter-lead application. Nothing is stored
// when validation fails.
func (s *LeadService) Apply(in LeadInput) (*models.LeadApplication, error) {
	if in.Name == "" || in.Email == "" || in.City == "" || in.WhatYouBuild == "" || in.Why == "" {
		return nil, validationErr("Missing required fields")
	}
	if !utils.IsValidEmail(in.Email) {
		return nil, validationErr("Invalid email address")
	}

	lead := &models.LeadApplication{
		ID:           "lead_" + uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		City:         in.City,
		Twitter:      in.Twitter,
		Linkedin:     in.Linkedin,
		WhatYouBuild: in.WhatYouBuild,
		Why:          in.Why,
		WhoYouInvite: in.WhoYouInvite,
		Timestamp:    time.Now(),
	}
	if err := s.Store.CreateLead(lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}
