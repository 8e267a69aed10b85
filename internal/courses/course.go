package courses

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Course is a scheduled offering. References to teachers, subjects, and rooms
// are plain ids and are not checked against their collections.
type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TeacherID   string `json:"teacherId"`
	SubjectID   string `json:"subjectId"`
	MaxStudents int    `json:"maxStudents" validate:"gte=0"`
	Schedule    string `json:"schedule"`
	RoomID      string `json:"roomId"`
}

func (c *Course) DocumentID() string      { return c.ID }
func (c *Course) SetDocumentID(id string) { c.ID = id }

// Validate checks field constraints on c.
func (c *Course) Validate() error {
	return validate.Struct(c)
}
