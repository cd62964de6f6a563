package user

import "context"

type User struct {
	ID        uint
	PublicID  string
	AnilistID int
	Name      string
	Avatar    string
	Enabled   bool
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
	FindByAnilistID(ctx context.Context, anilistID int) (*User, error)
}
