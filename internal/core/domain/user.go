package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64           `db:"id"`
	Username  string          `db:"username"`
	Hash      string          `db:"hash"` // bcrypt hashed password
	Cash      decimal.Decimal `db:"cash"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func NewUser(username, hashedPassword string, startingCash decimal.Decimal) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Hash:      hashedPassword,
		Cash:      startingCash,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
