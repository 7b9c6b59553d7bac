package resumes

import "time"

// PersonalInfo holds contact details shown at the top of a resume.
// Image is a public URL once an upload has been stored.
type PersonalInfo struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Experience is one work history entry.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
	IsCurrent   bool   `json:"is_current,omitempty"`
}

// Education is one education entry.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
}

// Project is one portfolio entry.
type Project struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

const (
	DefaultTemplate    = "classic"
	DefaultAccentColor = "#3B82F6"
)

// Resume is the stored document. Wire names are snake_case to match the
// builder UI's payloads.
type Resume struct {
	ID                  string       `json:"id"`
	UserID              string       `json:"user_id"`
	Title               string       `json:"title"`
	PersonalInfo        PersonalInfo `json:"personal_info"`
	ProfessionalSummary string       `json:"professional_summary"`
	Experience          []Experience `json:"experience"`
	Education           []Education  `json:"education"`
	Projects            []Project    `json:"projects"`
	Skills              []string     `json:"skills"`
	Template            string       `json:"template"`
	AccentColor         string       `json:"accent_color"`
	Public              bool         `json:"public"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`

	// ImageKey is the object-store key behind PersonalInfo.Image. Kept
	// internal so stale assets can be cleaned up on replacement.
	ImageKey string `json:"-"`
}

// NewResume carries the caller-settable fields for resume creation.
// Everything except Title may be zero; defaults fill the rest.
type NewResume struct {
	Title               string
	PersonalInfo        PersonalInfo
	ProfessionalSummary string
	Experience          []Experience
	Education           []Education
	Projects            []Project
	Skills              []string
}

// Patch is a field-level merge for updates. Nil pointers leave the stored
// value untouched; non-nil pointers replace it, including with zero values.
type Patch struct {
	Title               *string       `json:"title"`
	PersonalInfo        *PersonalInfo `json:"personal_info"`
	ProfessionalSummary *string       `json:"professional_summary"`
	Experience          *[]Experience `json:"experience"`
	Education           *[]Education  `json:"education"`
	Projects            *[]Project    `json:"projects"`
	Skills              *[]string     `json:"skills"`
	Template            *string       `json:"template"`
	AccentColor         *string       `json:"accent_color"`
	Public              *bool         `json:"public"`
}

// ImageRef describes what should happen to the resume image on update.
type ImageRef struct {
	data     []byte
	fileName string
}

// NoImage leaves the stored image untouched.
func NoImage() ImageRef { return ImageRef{} }

// PendingImage is a freshly uploaded binary that still needs storing.
func PendingImage(fileName string, data []byte) ImageRef {
	return ImageRef{data: data, fileName: fileName}
}

// Pending reports whether this ref carries an upload.
func (r ImageRef) Pending() bool { return len(r.data) > 0 }
