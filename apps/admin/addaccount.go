package main

import (
	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
)

// addAccount updates or creates an account.Account
func (cli *commandLine) addAccount(uname, name, role, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)

	if _, err := cli.acctSvc.GetByUsername(uname); err != nil {
		if err != account.ErrNotFound {
			return err
		}
		_, err = cli.acctSvc.Create(account.NewAccount{
			Username:        uname,
			Password:        pwd,
			PasswordConfirm: pwd,
			Name:            name,
			Role:            role,
		})
		return err
	}
	return cli.acctSvc.SetPassword(uname, pwd)
}
