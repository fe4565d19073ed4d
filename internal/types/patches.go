package types

// PersonalInfoPatch is a partial update of PersonalInfo; nil fields are left unchanged.
type PersonalInfoPatch struct {
	FullName  *string `json:"fullName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Portfolio *string `json:"portfolio,omitempty"`
	Summary   *string `json:"summary,omitempty"`
}

// Apply merges the patch into p.
func (patch PersonalInfoPatch) Apply(p PersonalInfo) PersonalInfo {
	set(&p.FullName, patch.FullName)
	set(&p.Email, patch.Email)
	set(&p.Phone, patch.Phone)
	set(&p.Location, patch.Location)
	set(&p.LinkedIn, patch.LinkedIn)
	set(&p.GitHub, patch.GitHub)
	set(&p.Portfolio, patch.Portfolio)
	set(&p.Summary, patch.Summary)
	return p
}

// EducationPatch is a partial update of an Education entry.
type EducationPatch struct {
	Degree         *string `json:"degree,omitempty"`
	Field          *string `json:"field,omitempty"`
	Institution    *string `json:"institution,omitempty"`
	Location       *string `json:"location,omitempty"`
	GraduationDate *string `json:"graduationDate,omitempty"`
	GPA            *string `json:"gpa,omitempty"`
}

// Apply merges the patch into e. The id is never changed.
func (patch EducationPatch) Apply(e Education) Education {
	set(&e.Degree, patch.Degree)
	set(&e.Field, patch.Field)
	set(&e.Institution, patch.Institution)
	set(&e.Location, patch.Location)
	set(&e.GraduationDate, patch.GraduationDate)
	set(&e.GPA, patch.GPA)
	return e
}

// ExperiencePatch is a partial update of an Experience entry.
type ExperiencePatch struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the patch into e.
func (patch ExperiencePatch) Apply(e Experience) Experience {
	set(&e.Title, patch.Title)
	set(&e.Company, patch.Company)
	set(&e.Location, patch.Location)
	set(&e.StartDate, patch.StartDate)
	set(&e.EndDate, patch.EndDate)
	set(&e.Description, patch.Description)
	if patch.Current != nil {
		e.Current = *patch.Current
	}
	return e
}

// ProjectPatch is a partial update of a Project entry.
type ProjectPatch struct {
	Name         *string `json:"name,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
	Link         *string `json:"link,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// Apply merges the patch into p.
func (patch ProjectPatch) Apply(p Project) Project {
	set(&p.Name, patch.Name)
	set(&p.Technologies, patch.Technologies)
	set(&p.Link, patch.Link)
	set(&p.Description, patch.Description)
	return p
}

// AchievementPatch is a partial update of an Achievement entry.
type AchievementPatch struct {
	Title       *string `json:"title,omitempty"`
	Date        *string `json:"date,omitempty"`
	Issuer      *string `json:"issuer,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the patch into a.
func (patch AchievementPatch) Apply(a Achievement) Achievement {
	set(&a.Title, patch.Title)
	set(&a.Date, patch.Date)
	set(&a.Issuer, patch.Issuer)
	set(&a.Description, patch.Description)
	return a
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
