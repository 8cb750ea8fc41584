package main

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/record"
	logsvc "github.com/moyeohq/moyeo/services/logger"
	"github.com/moyeohq/moyeo/storage/csvstore"
	testutil "github.com/moyeohq/moyeo/tests"
)

var acctSvc *account.Service

func setup(t *testing.T) *commandLine {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags)

	conf := core.NewConfig()
	conf.TestMode = true
	conf.DataDir = t.TempDir()

	store, err := csvstore.New(conf, logsvc.NewConsoleLogger(logger))
	if err != nil {
		t.Fatalf("csvstore.New() failed: %v", err)
	}
	recSvc := record.NewService(store, logsvc.NewConsoleLogger(logger), conf)
	acctSvc = account.NewService(store, recSvc)

	// start CLI
	return &commandLine{
		store:   store,
		recSvc:  recSvc,
		acctSvc: acctSvc,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_maintenance(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "seed", args: []string{"seed"}},
		{name: "seed is idempotent", args: []string{"seed"}},
		{name: "integrity after seed", args: []string{"integrity"}},
		{name: "recover with empty journal", args: []string{"recover"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addAccount(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"addaccount"}, wantErr: errHelp},
		{name: "username but no name", args: []string{"addaccount", "-username", "minsu01"}, wantErr: errHelp},
		{name: "no password", args: []string{"addaccount", "-username", "minsu01", "-name", "김민수"}, wantErr: errHelp},
		{name: "create member", args: []string{"addaccount", "-username", "minsu01", "-name", "김민수"}, extra: extra{pwd: "tr3s-s0lid3!"}},
		{name: "create teacher", args: []string{"addaccount", "-username", "teacher1", "-name", "박선생", "-role", account.RoleTeacher}, extra: extra{pwd: "tr3s-s0lid3!"}},
		{name: "existing account gets password reset", args: []string{"addaccount", "-username", "minsu01", "-name", "김민수"}, extra: extra{pwd: "0th3r-s0lid3!"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			acct, err := acctSvc.GetByUsername("minsu01")
			if err != nil {
				t.Fatalf("GetByUsername() failed: %v", err)
			}
			if extra, ok := tt.extra.(extra); ok {
				if err := acct.CheckPassword(extra.pwd); err != nil {
					t.Error("stored password does not match the prompted one")
				}
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	acct := testutil.CreateAccount(t, acctSvc, "jiwoo22", "이지우", "tr3s-s0lid3!", account.RoleMember)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "account not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: account.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-username", acct.Username}, extra: extra{pwd: "n0uve4u-mdp!"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := acctSvc.GetByUsername(acct.Username)
				if err != nil {
					t.Fatalf("GetByUsername() failed: %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, acct.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
