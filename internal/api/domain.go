package api

import (
	"github.com/JaimeStill/schedease/internal/courses"
	"github.com/JaimeStill/schedease/internal/documents"
	"github.com/JaimeStill/schedease/internal/faculty"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Courses   courses.System
	Faculty   faculty.System
	Documents documents.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Courses: courses.New(runtime.Store, runtime.Logger),
		Faculty: faculty.New(
			runtime.Store,
			runtime.Accounts,
			runtime.Archiver,
			runtime.Logger,
		),
		Documents: documents.New(
			runtime.Store,
			runtime.Collections,
			[]string{faculty.FacultyCollection},
			runtime.Logger,
		),
	}
}
