package models

// Course is one catalog record as it is stored and loaded. Prerequisites and
// Satisfies hold the raw catalog text; parsing happens when a snapshot is
// compiled.
type Course struct {
	ID            string  `json:"id" db:"id"`
	CourseName    string  `json:"courseName" db:"course_name"`
	SubjectName   string  `json:"subjectName" db:"subject_name"`
	Description   *string `json:"description,omitempty" db:"description"` // Nullable
	Prerequisites string  `json:"prerequisites" db:"prerequisites"`
	Satisfies     string  `json:"satisfies" db:"satisfies"`
	Credits       int     `json:"credits" db:"credits"`
}
