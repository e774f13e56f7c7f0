package profile

import "time"

type SocialMedia struct {
	Facebook  string
	Twitter   string
	Instagram string
	LinkedIn  string
}

type Profile struct {
	UserID    int64
	Phone     string
	Bio       string
	Address   string
	City      string
	Country   string
	Website   string
	Social    SocialMedia
	UpdatedAt time.Time
}

// Empty returns the profile of a user that never saved one.
func Empty(userID int64) *Profile {
	return &Profile{UserID: userID}
}
