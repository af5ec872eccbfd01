package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Admin       bool   `json:"admin"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// ProfileResponse is the body of GET /api/auth/me. Timestamps are null for
// anonymous subjects, which have no stored profile.
type ProfileResponse struct {
	UID         string      `json:"uid"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	Admin       bool        `json:"admin"`
	IsAnonymous bool        `json:"isAnonymous"`
	Preferences interface{} `json:"preferences"`
	CreatedAt   *string     `json:"createdAt"`
	LastLogin   *string     `json:"lastLogin"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
