package models

// Request payloads. Create inputs use plain fields; update inputs use
// Optional / Nullable so that omitted keys leave stored values untouched.

type UpdateProfileInput struct {
	Name            Optional[string] `json:"name" validate:"omitempty,min=1"`
	Title           Optional[string] `json:"title" validate:"omitempty,min=1"`
	Bio             Optional[string] `json:"bio" validate:"omitempty,min=1"`
	ExperienceYears Optional[int]    `json:"experience_years" validate:"omitempty,min=0"`
	Aspirations     Nullable[string] `json:"aspirations"`
	ProfileImageURL Nullable[string] `json:"profile_image_url" validate:"omitempty,url"`
}

type CreateSkillInput struct {
	Name             string  `json:"name" validate:"required"`
	Category         string  `json:"category" validate:"required"`
	ProficiencyLevel int     `json:"proficiency_level" validate:"min=1,max=5"`
	IconURL          *string `json:"icon_url" validate:"omitempty,url"`
	DisplayOrder     *int    `json:"display_order" validate:"omitempty,min=0"`
}

type UpdateSkillInput struct {
	ID               int64            `json:"id" validate:"required"`
	Name             Optional[string] `json:"name" validate:"omitempty,min=1"`
	Category         Optional[string] `json:"category" validate:"omitempty,min=1"`
	ProficiencyLevel Optional[int]    `json:"proficiency_level" validate:"omitempty,min=1,max=5"`
	IconURL          Nullable[string] `json:"icon_url" validate:"omitempty,url"`
	DisplayOrder     Optional[int]    `json:"display_order" validate:"omitempty,min=0"`
}

type CreateProjectInput struct {
	Title            string  `json:"title" validate:"required"`
	Description      string  `json:"description" validate:"required"`
	ShortDescription string  `json:"short_description" validate:"required"`
	TechnologiesUsed *string `json:"technologies_used" validate:"required"`
	LiveDemoURL      *string `json:"live_demo_url" validate:"omitempty,url"`
	GithubURL        *string `json:"github_url" validate:"omitempty,url"`
	ImageURL         *string `json:"image_url" validate:"omitempty,url"`
	DisplayOrder     *int    `json:"display_order" validate:"omitempty,min=0"`
	IsFeatured       *bool   `json:"is_featured"`
}

type UpdateProjectInput struct {
	ID               int64            `json:"id" validate:"required"`
	Title            Optional[string] `json:"title" validate:"omitempty,min=1"`
	Description      Optional[string] `json:"description" validate:"omitempty,min=1"`
	ShortDescription Optional[string] `json:"short_description" validate:"omitempty,min=1"`
	TechnologiesUsed Optional[string] `json:"technologies_used"`
	LiveDemoURL      Nullable[string] `json:"live_demo_url" validate:"omitempty,url"`
	GithubURL        Nullable[string] `json:"github_url" validate:"omitempty,url"`
	ImageURL         Nullable[string] `json:"image_url" validate:"omitempty,url"`
	DisplayOrder     Optional[int]    `json:"display_order" validate:"omitempty,min=0"`
	IsFeatured       Optional[bool]   `json:"is_featured"`
}

type CreateContactMessageInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject"`
	Message string  `json:"message" validate:"required"`
}

type UpdateContactInfoInput struct {
	Email       Optional[string] `json:"email" validate:"omitempty,email"`
	Phone       Nullable[string] `json:"phone"`
	Location    Nullable[string] `json:"location"`
	LinkedinURL Nullable[string] `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL   Nullable[string] `json:"github_url" validate:"omitempty,url"`
	TwitterURL  Nullable[string] `json:"twitter_url" validate:"omitempty,url"`
	WebsiteURL  Nullable[string] `json:"website_url" validate:"omitempty,url"`
}

// IDInput carries the target of delete and mark-read operations.
type IDInput struct {
	ID int64 `json:"id" validate:"required"`
}
