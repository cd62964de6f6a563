package dbschema

import (
	"animehi.app/anime-api-gateway/app/domain/user"
	"animehi.app/anime-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

type User struct {
	BaseModel
	PublicID  string `gorm:"uniqueIndex;not null"`
	AnilistID int    `gorm:"uniqueIndex;not null"`
	Name      string
	Avatar    string
	Enabled   bool
	Comments  []Comment `gorm:"foreignKey:UserID"`
}

func NewSchemaUser(u *user.User) *User {
	return &User{
		BaseModel: BaseModel{
			ID: u.ID,
		},
		PublicID:  u.PublicID,
		AnilistID: u.AnilistID,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Enabled:   u.Enabled,
	}
}

func (u *User) EtoD() *user.User {
	return &user.User{
		ID:        u.ID,
		PublicID:  u.PublicID,
		AnilistID: u.AnilistID,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Enabled:   u.Enabled,
	}
}
