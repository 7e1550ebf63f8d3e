package models

// Course is a course as the rest of the application sees it.
type Course struct {
	CourseID     string `json:"courseId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	InstructorID string `json:"instructorId"`
	MediaURL     string `json:"mediaUrl,omitempty"`
}

// CourseWire is the body the CourseModels endpoint expects. Field names are
// PascalCase on the wire and MediaUrl is always present.
type CourseWire struct {
	CourseID     string `json:"CourseId"`
	Title        string `json:"Title"`
	Description  string `json:"Description"`
	InstructorID string `json:"InstructorId"`
	MediaURL     string `json:"MediaUrl"`
}

// ToCourseWire maps a Course into the CourseModels wire shape.
func ToCourseWire(c Course) CourseWire {
	return CourseWire{
		CourseID:     c.CourseID,
		Title:        c.Title,
		Description:  c.Description,
		InstructorID: c.InstructorID,
		MediaURL:     c.MediaURL,
	}
}
