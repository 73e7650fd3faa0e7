package dto

// SignupRequest is the body of the public signup endpoint. Role may be student or creator.
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,containsuppercase,containslowercase,containsdigit"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Role      string `json:"role" binding:"omitempty,signuprole"`
}

type AdminSignupRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,containsuppercase,containslowercase,containsdigit"`
	FirstName  string `json:"first_name" binding:"required,max=100"`
	LastName   string `json:"last_name" binding:"max=100"`
	AccessCode string `json:"access_code" binding:"required"`
}

// ConfirmEmailRequest carries either the link token or the email plus the emailed code.
type ConfirmEmailRequest struct {
	Token            string `json:"token"`
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmationCode"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required,userrole"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,profilestatus"`
}

type CourseRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"max=5000"`
	PriceCents   int64  `json:"price_cents" binding:"gte=0"`
	ThumbnailKey string `json:"thumbnail_key"`
	VideoKey     string `json:"video_key"`
}
