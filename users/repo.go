package users

type UserRepo interface {
	Upsert(user *User) error
	GetByEmail(email string) (*User, error)
	GetByID(ID string) (*User, error)
	SetActive(ID string, active bool) error
	SetEditor(ID string, editor bool) error
	SetAdmin(ID string, admin bool) error
}
