package models

type ActorRole string

const (
	ActorRolePatient ActorRole = "patient"
	ActorRoleDoctor  ActorRole = "doctor"
)

func (r ActorRole) IsValid() bool {
	return r == ActorRolePatient || r == ActorRoleDoctor
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string    `json:"id"`
	Role ActorRole `json:"role"`
}

func (a Actor) IsDoctor() bool  { return a.Role == ActorRoleDoctor }
func (a Actor) IsPatient() bool { return a.Role == ActorRolePatient }
