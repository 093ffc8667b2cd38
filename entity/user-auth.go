package entity

// UserAuth is the identity resolved from an access token.
type UserAuth struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *UserAuth) IsSeller() bool {
	return u != nil && u.Role == SellerRole
}

func (u *UserAuth) IsClient() bool {
	return u != nil && u.Role == ClientRole
}

type LoginResult struct {
	Token string    `json:"token"`
	User  *UserAuth `json:"user"`
}
