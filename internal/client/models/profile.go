package models

import "time"

// Profile is the application-level user record, keyed by the user id.
type Profile struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	CompanyName string    `json:"company_name"`
	AvatarURL   string    `json:"avatar_url"`
	Location    string    `json:"location"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	FullName    *string `json:"full_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Location    *string `json:"location,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// Empty reports whether u changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.FullName == nil && u.Phone == nil && u.CompanyName == nil &&
		u.AvatarURL == nil && u.Location == nil && u.Bio == nil
}

// Columns returns the set fields keyed by column name, in a stable order
// of insertion for callers that build SQL.
func (u ProfileUpdate) Columns() ([]string, []any) {
	var cols []string
	var vals []any
	add := func(col string, v *string) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	add("full_name", u.FullName)
	add("phone", u.Phone)
	add("company_name", u.CompanyName)
	add("avatar_url", u.AvatarURL)
	add("location", u.Location)
	add("bio", u.Bio)
	return cols, vals
}
