package account

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/moyeohq/moyeo/core"
)

// Roles. RoleTeacher is the administrator role: it bypasses club scoping and
// may see soft-deleted chat rows.
const (
	RoleTeacher       = "교사"
	RolePresident     = "회장"
	RoleVicePresident = "부회장"
	RoleTreasurer     = "총무"
	RoleRecorder      = "기록부장"
	RoleDesigner      = "디자인담당"
	RoleMember        = "동아리원"
)

var AllRoles = []string{
	RoleTeacher,
	RolePresident,
	RoleVicePresident,
	RoleTreasurer,
	RoleRecorder,
	RoleDesigner,
	RoleMember,
}

type Account struct {
	Username     string
	PasswordHash []byte
	Name         string
	Role         string
	CreatedAt    time.Time
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

func (a Account) IsAdmin() bool {
	return a.Role == RoleTeacher
}

func (a Account) Row() core.Row {
	return core.Row{
		"username":     a.Username,
		"password":     string(a.PasswordHash),
		"name":         a.Name,
		"role":         a.Role,
		"created_date": core.FormatTime(a.CreatedAt),
	}
}

func FromRow(row core.Row) (Account, error) {
	createdAt, err := core.ParseTime(row["created_date"])
	if err != nil {
		return Account{}, core.NewMalformedRowError(core.ColAccounts, row["username"], err)
	}
	return Account{
		Username:     row["username"],
		PasswordHash: []byte(row["password"]),
		Name:         row["name"],
		Role:         row["role"],
		CreatedAt:    createdAt,
	}, nil
}

// NewAccount contains information needed to create a new Account.
type NewAccount struct {
	Username        string `json:"username" validate:"required,min=4,alphanum_"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required"`
	Role            string `json:"role" validate:"required,clubrole"`
}

func (na *NewAccount) Validate(svc *Service) error {
	na.Username = core.CleanString(na.Username, true /* lower */)
	na.Name = core.CleanString(na.Name)
	na.Role = core.CleanString(na.Role)

	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	return svc.CheckUniqueness(na.Username)
}
