package dto

// UserInfoRequest payload.
type UserInfoRequest struct {
	UserID *int `json:"user_id"`
}

// UserResponse is the wire form of a user record.
type UserResponse struct {
	ID      int    `json:"user_id"`
	Role    string `json:"role"`
	Premium bool   `json:"is_premium"`
}
