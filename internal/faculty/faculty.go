// Package faculty deletes faculty members together with the teacher records
// and identity-provider account that belong to them.
package faculty

// Collections read and written by the deletion workflow.
const (
	FacultyCollection = "faculty"
	TeacherCollection = "teachers"

	// FacultyRefField is the teacher field holding the owning faculty id.
	FacultyRefField = "facultyId"
	// UIDField is the faculty field holding the identity-provider subject.
	UIDField = "uid"
)

// RevocationStatus is the outcome of the identity-account step of a deletion.
type RevocationStatus string

const (
	// RevocationSkipped means the faculty record carried no uid.
	RevocationSkipped RevocationStatus = "skipped"
	// RevocationCompleted means the identity provider deleted the account.
	RevocationCompleted RevocationStatus = "completed"
	// RevocationIgnored means the identity provider call failed and the
	// failure was absorbed. Err holds the cause.
	RevocationIgnored RevocationStatus = "ignored"
)

// Revocation records what happened to the faculty member's identity account.
type Revocation struct {
	Status RevocationStatus `json:"status"`
	UID    string           `json:"uid,omitempty"`
	Err    error            `json:"-"`
}

// Result summarizes a completed faculty deletion.
type Result struct {
	FacultyID       string     `json:"facultyId"`
	TeachersDeleted int        `json:"teachersDeleted"`
	Revocation      Revocation `json:"revocation"`
}
