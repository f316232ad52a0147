package submit

import "github.com/jonathan/profile-agent/internal/types"

// Kind names a request the client can dispatch.
type Kind string

const (
	// KindSaveCandidate saves a candidate profile
	KindSaveCandidate Kind = "SAVE_CANDIDATE"
	// KindCheckAuth checks the session against the service
	KindCheckAuth Kind = "CHECK_AUTH"
	// KindCheckCandidateStatus asks whether a profile URL is already saved
	KindCheckCandidateStatus Kind = "CHECK_CANDIDATE_STATUS"
	// KindPing is answered locally with the client version
	KindPing Kind = "PING"
)

// Request is one of SaveCandidate, CheckAuth, CheckCandidateStatus or Ping.
type Request interface {
	Kind() Kind
}

// SaveCandidate requests that a profile be saved.
type SaveCandidate struct {
	Profile *types.CandidateProfile
}

// CheckAuth requests the current session status.
type CheckAuth struct{}

// CheckCandidateStatus requests the saved status of a profile URL.
type CheckCandidateStatus struct {
	SourceURL string
}

// Ping requests the client version.
type Ping struct{}

func (SaveCandidate) Kind() Kind        { return KindSaveCandidate }
func (CheckAuth) Kind() Kind            { return KindCheckAuth }
func (CheckCandidateStatus) Kind() Kind { return KindCheckCandidateStatus }
func (Ping) Kind() Kind                 { return KindPing }

// Response is the uniform reply to a dispatched request.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Version string `json:"version,omitempty"`
	Type    string `json:"type,omitempty"`
}
