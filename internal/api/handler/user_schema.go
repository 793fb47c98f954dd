package handler

// createUserRequest is the signup payload. Credential and profile fields are
// forwarded to Alma; only id and name fields are mirrored locally.
type createUserRequest struct {
	FirstName            string `json:"firstName"            validate:"required,min=2,max=50"`
	LastName             string `json:"lastName"             validate:"required,min=2,max=50"`
	SocialName           string `json:"socialName"           validate:"omitempty,max=100"`
	BornDate             string `json:"bornDate"             validate:"required,datetime=2006-01-02"`
	MotherName           string `json:"motherName"           validate:"required,max=100"`
	Username             string `json:"username"             validate:"required,min=3,max=30"`
	Email                string `json:"email"                validate:"required,email"`
	Phone                string `json:"phone"                validate:"required,max=20"`
	Password             string `json:"password"             validate:"required,min=8"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
}

// updateUserRequest carries a partial profile update. Only provided fields
// are forwarded to Alma; absent fields stay untouched.
type updateUserRequest struct {
	FirstName  *string `json:"firstName"  validate:"omitempty,min=2,max=50"`
	LastName   *string `json:"lastName"   validate:"omitempty,min=2,max=50"`
	SocialName *string `json:"socialName" validate:"omitempty,max=100"`
	BornDate   *string `json:"bornDate"   validate:"omitempty,datetime=2006-01-02"`
	MotherName *string `json:"motherName" validate:"omitempty,max=100"`
	Username   *string `json:"username"   validate:"omitempty,min=3,max=30"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Phone      *string `json:"phone"      validate:"omitempty,max=20"`
}
