package account

import (
	"errors"
	"time"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/record"
)

var (
	// errors
	ErrNotFound           = errors.New("account not found")
	ErrUsernameExists     = errors.New("an account with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	store core.Store
	rec   *record.Service
}

func NewService(store core.Store, rec *record.Service) *Service {
	return &Service{store: store, rec: rec}
}

func (svc *Service) CheckUniqueness(username string) error {
	t, err := svc.store.Load(core.ColAccounts)
	if err != nil {
		return err
	}
	for _, row := range t.Rows {
		if row["username"] == username {
			return core.NewValidationError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
		}
	}
	return nil
}

func (svc *Service) Create(na NewAccount) (Account, error) {
	if err := na.Validate(svc); err != nil {
		return Account{}, err
	}
	acct := Account{
		Username:  na.Username,
		Name:      na.Name,
		Role:      na.Role,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(na.Password); err != nil {
		return Account{}, err
	}
	if _, err := svc.rec.Insert(core.ColAccounts, acct.Row()); err != nil {
		return Account{}, err
	}
	return acct, nil
}

func (svc *Service) GetByUsername(username string) (Account, error) {
	username = core.CleanString(username, true /* lower */)
	t, err := svc.store.Load(core.ColAccounts)
	if err != nil {
		return Account{}, err
	}
	for _, row := range t.Rows {
		if row["username"] == username {
			return FromRow(row)
		}
	}
	return Account{}, ErrNotFound
}

func (svc *Service) All() ([]Account, error) {
	t, err := svc.store.Load(core.ColAccounts)
	if err != nil {
		return nil, err
	}
	accts := make([]Account, 0, len(t.Rows))
	for _, row := range t.Rows {
		acct, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		accts = append(accts, acct)
	}
	return accts, nil
}

func (svc *Service) Authenticate(username, password string) (Account, error) {
	acct, err := svc.GetByUsername(username)
	if err != nil {
		if err == ErrNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if err := acct.CheckPassword(password); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

// SetPassword rehashes and stores a new password for username.
func (svc *Service) SetPassword(username, password string) error {
	var acct Account
	if err := acct.SetPassword(password); err != nil {
		return err
	}
	n, err := svc.rec.UpdateWhere(core.ColAccounts,
		func(row core.Row) bool { return row["username"] == username },
		func(row core.Row) { row["password"] = string(acct.PasswordHash) },
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
