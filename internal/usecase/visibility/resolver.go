// Package visibility decides, per viewer, which fields of a profile may be
// returned. Resolve is a pure function: it never reads or mutates state and is
// safe to call concurrently. It is the only place where gating rules live.
package visibility

import "github.com/biyeghor/biyeghor-backend/internal/domain"

// PlaceholderImageURL is returned instead of a withheld image URL. The real
// URL must never leave the server for a viewer who may not see it.
const PlaceholderImageURL = "/static/images/profile-placeholder.svg"

// Input carries everything Resolve needs. Viewer is nil for unauthenticated
// requests. InterestStatus is empty when no active interest exists between the
// pair.
type Input struct {
	Viewer             *domain.Profile
	Target             *domain.Profile
	InterestStatus     domain.InterestStatus
	IsUnlocked         bool
	PreviewMode        bool
	CompatibilityScore *int
}

// FamilyDetails groups the unlock-gated family fields.
type FamilyDetails struct {
	FatherOccupation *string `json:"father_occupation"`
	MotherOccupation *string `json:"mother_occupation"`
	Siblings         *string `json:"siblings"`
	FamilyType       *string `json:"family_type"`
}

// View is the resolved profile payload. Withheld fields carry a redaction
// marker (placeholder URL, nil value plus Locked flag) so the caller can
// render a locked affordance instead of the real value.
type View struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`

	Religion      *string `json:"religion"`
	HeightCM      *int    `json:"height_cm"`
	MaritalStatus *string `json:"marital_status"`
	About         *string `json:"about"`
	Education     *string `json:"education"`
	WorkHistory   *string `json:"work_history"`

	ProfileImageURL  string   `json:"profile_image_url"`
	AdditionalImages []string `json:"additional_images"`
	GalleryLocked    bool     `json:"gallery_locked"`

	Phone         *string        `json:"phone"`
	ContactLocked bool           `json:"contact_locked"`
	Family        *FamilyDetails `json:"family"`
	FamilyLocked  bool           `json:"family_locked"`

	CompatibilityScore *int `json:"compatibility_score,omitempty"`

	InterestStatus string `json:"interest_status,omitempty"`
	IsUnlocked     bool   `json:"is_unlocked"`
}

// Resolve computes the visible view of in.Target for in.Viewer.
//
// Precedence: ownership first (an owner outside preview mode sees everything),
// then the profile-image privacy rule, then the unlock gate on contact and
// family fields. Baseline fields are always visible. Preview mode shows the
// owner their own profile exactly as a stranger with no connection would see
// it.
func Resolve(in Input) *View {
	target := in.Target

	view := &View{
		ID:     target.ID,
		Name:   target.Name,
		Gender: target.Gender,

		Religion:      target.Religion,
		HeightCM:      target.HeightCM,
		MaritalStatus: target.MaritalStatus,
		About:         target.About,
		Education:     target.Education,
		WorkHistory:   target.WorkHistory,

		InterestStatus: string(in.InterestStatus),
	}

	isOwner := in.Viewer != nil && in.Viewer.ID == target.ID && !in.PreviewMode

	unlocked := in.IsUnlocked || isOwner
	accepted := in.InterestStatus == domain.InterestAccepted

	if isOwner || target.ProfileImagePrivacy == domain.PrivacyPublic ||
		(target.ProfileImagePrivacy == domain.PrivacyMatches && accepted) {
		if target.ProfileImageURL != nil {
			view.ProfileImageURL = *target.ProfileImageURL
		}
	}
	if view.ProfileImageURL == "" {
		view.ProfileImageURL = PlaceholderImageURL
	}

	if unlocked {
		view.Phone = target.Phone
		view.Family = &FamilyDetails{
			FatherOccupation: target.FatherOccupation,
			MotherOccupation: target.MotherOccupation,
			Siblings:         target.Siblings,
			FamilyType:       target.FamilyType,
		}
	} else {
		view.ContactLocked = true
		view.FamilyLocked = true
	}

	// The gallery needs an unlock AND must pass the owner's gallery privacy
	// setting. An unlock alone never overrides a "private" gallery.
	galleryAllowed := isOwner || target.AdditionalImagesPrivacy == domain.PrivacyPublic ||
		(target.AdditionalImagesPrivacy == domain.PrivacyMatches && accepted)
	if unlocked && galleryAllowed {
		view.AdditionalImages = target.AdditionalImages
	} else {
		view.AdditionalImages = []string{}
		view.GalleryLocked = true
	}
	view.IsUnlocked = unlocked

	// Score stays hidden for unauthenticated viewers and in owner preview mode.
	if in.Viewer != nil && !in.PreviewMode {
		view.CompatibilityScore = in.CompatibilityScore
	}

	return view
}
