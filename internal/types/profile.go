// Package types provides type definitions for structured data used throughout the profile-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// UnknownFirstName is the placeholder first name used when no name could be located.
const UnknownFirstName = "Unknown"

// Experience represents a single work experience row.
type Experience struct {
	Title    string `json:"title" validate:"required"`
	Company  string `json:"company"`
	Dates    string `json:"dates"`
	Location string `json:"location,omitempty"`
}

// Education represents a single education row.
type Education struct {
	School string `json:"school" validate:"required"`
	Degree string `json:"degree,omitempty"`
	Dates  string `json:"dates,omitempty"`
}

// CandidateProfile is the structured record recovered from a profile page.
// JSON field names follow the candidate service's wire contract.
type CandidateProfile struct {
	FirstName         string       `json:"firstName" validate:"required"`
	LastName          string       `json:"lastName"`
	Headline          string       `json:"headline"`
	Location          string       `json:"location"`
	LinkedInURL       string       `json:"linkedInUrl" validate:"required,url"`
	CurrentCompany    string       `json:"currentCompany"`
	ProfilePictureURL *string      `json:"profilePictureUrl,omitempty"`
	Experiences       []Experience `json:"experiences" validate:"dive"`
	Educations        []Education  `json:"educations" validate:"dive"`
	Skills            []string     `json:"skills" validate:"dive,required"`
	Languages         []string     `json:"languages" validate:"dive,required"`
}

// NewCandidateProfile returns an empty profile for pageURL with every sequence
// initialised, so the JSON form never carries null arrays.
func NewCandidateProfile(pageURL string) CandidateProfile {
	return CandidateProfile{
		FirstName:   UnknownFirstName,
		LinkedInURL: pageURL,
		Experiences: []Experience{},
		Educations:  []Education{},
		Skills:      []string{},
		Languages:   []string{},
	}
}

// FullName joins first and last name, skipping the placeholder.
func (p *CandidateProfile) FullName() string {
	first := p.FirstName
	if first == UnknownFirstName && p.LastName == "" {
		return ""
	}
	if p.LastName == "" {
		return first
	}
	return first + " " + p.LastName
}

// HasName reports whether any real name fragment was recovered.
func (p *CandidateProfile) HasName() bool {
	return p.FullName() != ""
}

// Validate checks the minimum viable fields for a save request.
func (p *CandidateProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// SaveCandidateRequest is the envelope the candidate service expects on save.
type SaveCandidateRequest struct {
	SourceURL string            `json:"sourceUrl" validate:"required,url"`
	Profile   *CandidateProfile `json:"profile" validate:"required"`
}

// NewSaveCandidateRequest wraps a profile, using its page URL as the source.
func NewSaveCandidateRequest(profile *CandidateProfile) *SaveCandidateRequest {
	return &SaveCandidateRequest{
		SourceURL: profile.LinkedInURL,
		Profile:   profile,
	}
}

// Validate validates the SaveCandidateRequest using the validator.
func (r *SaveCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CandidateStatus is the payload returned by the candidate status endpoint.
type CandidateStatus struct {
	Exists      bool           `json:"exists"`
	CandidateID string         `json:"candidateId,omitempty"`
	Status      map[string]any `json:"status,omitempty"`
}
