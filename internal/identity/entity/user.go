package entity

import "time"

type User struct {
	ID        int64
	Username  string
	Email     string
	Role      Role
	CreatedAt time.Time
}

type NewUser struct {
	ID       int64
	Username string
	Email    string
	Role     Role
}

type UserLoginInfo struct {
	ID           int64
	Username     string
	Email        string
	Role         Role
	PasswordHash string
}
