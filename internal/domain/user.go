package domain

// User — публичные поля профиля, которые можно отдавать собеседнику.
type User struct {
	ID          string `db:"id"`
	DisplayName string `db:"display_name"`
	Headline    string `db:"headline"`
	AvatarURL   string `db:"avatar_url"`
}
