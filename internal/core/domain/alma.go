package domain

import "time"

// PersonalData is the "personal" group of an Alma profile.
type PersonalData struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	SocialName string `json:"socialName"`
	BornDate   string `json:"bornDate"`
	MotherName string `json:"motherName"`
}

// ContactData is the "contact" group of an Alma profile.
type ContactData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// SecurityData is the "security" group of an Alma profile.
type SecurityData struct {
	Status string `json:"status"`
}

// AlmaProfile is the remote identity service's canonical record for a person.
// It is never persisted locally in full; only the id and name fields are
// mirrored into the local User row.
type AlmaProfile struct {
	ID        string       `json:"id"`
	Personal  PersonalData `json:"personal"`
	Contact   ContactData  `json:"contact"`
	Security  SecurityData `json:"security"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
