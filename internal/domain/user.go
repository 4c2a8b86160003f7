package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleManager     = 1
	RoleSalesperson = 2
)

// Claims identifica quem está registrando a venda. SalespersonID só é
// preenchido para tokens de vendedor
type Claims struct {
	SubjectID     int64
	RoleID        int
	SalespersonID int64
	jwt.RegisteredClaims
}

func (c *Claims) CanRecordSaleFor(salespersonID int64) bool {
	if c.RoleID == RoleManager {
		return true
	}
	return c.RoleID == RoleSalesperson && c.SalespersonID == salespersonID
}
