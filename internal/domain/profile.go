package domain

import "time"

// PrivacyLevel controls who can see a profile's image fields.
type PrivacyLevel string

const (
	PrivacyPublic  PrivacyLevel = "public"
	PrivacyMatches PrivacyLevel = "matches"
	PrivacyPrivate PrivacyLevel = "private"
)

func (p PrivacyLevel) Valid() bool {
	return p == PrivacyPublic || p == PrivacyMatches || p == PrivacyPrivate
}

// Profile is the identity record for a user. It is read-only to this service;
// profile editing happens elsewhere.
type Profile struct {
	ID     int `json:"id" db:"id"`
	UserID int `json:"user_id" db:"user_id"`

	Name          string  `json:"name" db:"name"`
	Gender        string  `json:"gender" db:"gender"`
	Religion      *string `json:"religion" db:"religion"`
	HeightCM      *int    `json:"height_cm" db:"height_cm"`
	MaritalStatus *string `json:"marital_status" db:"marital_status"`
	About         *string `json:"about" db:"about"`
	Education     *string `json:"education" db:"education"`
	WorkHistory   *string `json:"work_history" db:"work_history"`

	ProfileImageURL  *string  `json:"profile_image_url" db:"profile_image_url"`
	AdditionalImages []string `json:"additional_images" db:"-"`

	Phone            *string `json:"phone" db:"phone"`
	FatherOccupation *string `json:"father_occupation" db:"father_occupation"`
	MotherOccupation *string `json:"mother_occupation" db:"mother_occupation"`
	Siblings         *string `json:"siblings" db:"siblings"`
	FamilyType       *string `json:"family_type" db:"family_type"`

	ProfileImagePrivacy     PrivacyLevel `json:"profile_image_privacy" db:"profile_image_privacy"`
	AdditionalImagesPrivacy PrivacyLevel `json:"additional_images_privacy" db:"additional_images_privacy"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileSummary is the always-visible subset embedded in interest listings.
type ProfileSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{ID: p.ID, Name: p.Name, Gender: p.Gender}
}
