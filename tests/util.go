package testutil

import (
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/club"
	"github.com/moyeohq/moyeo/core/record"
	logsvc "github.com/moyeohq/moyeo/services/logger"
	"github.com/moyeohq/moyeo/storage/csvstore"
	"github.com/moyeohq/moyeo/storage/memstore"
)

// Logger returns a console logger suitable for tests.
func Logger() core.Logger {
	return logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
}

// Config returns a test configuration rooted at a per-test temp dir.
func Config(t *testing.T) *core.Config {
	conf := core.NewConfig()
	conf.TestMode = true
	conf.DataDir = t.TempDir()
	return conf
}

// NewStore returns a fresh in-memory store with every collection registered.
func NewStore() *memstore.Store {
	return memstore.New()
}

// NewCSVStore returns a file-backed store rooted at a per-test temp dir.
func NewCSVStore(t *testing.T, conf *core.Config) *csvstore.Store {
	st, err := csvstore.New(conf, Logger())
	if err != nil {
		t.Fatalf("csvstore.New() failed: %v", err)
	}
	return st
}

// NewRecordService wires a record service without a journal.
func NewRecordService(store core.Store) *record.Service {
	return record.NewService(store, Logger(), nil)
}

func CreateAccount(
	t *testing.T,
	svc *account.Service,
	uname, name, pwd, role string,
) account.Account {
	acct, err := svc.Create(account.NewAccount{
		Username:        uname,
		Password:        pwd,
		PasswordConfirm: pwd,
		Name:            name,
		Role:            role,
	})
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acct
}

func CreateClub(
	t *testing.T,
	svc *club.Service,
	name, president string,
	maxMembers int,
) club.Club {
	c, err := svc.Create(club.NewClub{
		Name:        name,
		Description: name + " club",
		President:   president,
		MaxMembers:  maxMembers,
	})
	if err != nil {
		t.Fatalf("CreateClub() failed: %v", err)
	}
	return c
}

func AddMember(t *testing.T, svc *club.Service, uname, clubName string) club.Membership {
	m, err := svc.AddMember(uname, clubName)
	if err != nil {
		t.Fatalf("AddMember() failed: %v", err)
	}
	return m
}

// Diff renders a unified diff of two strings, for readable table assertions.
func Diff(want, got string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	return diff
}

// Today returns now truncated to midnight, for date-only comparisons.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// RowsString flattens a table into a deterministic line-per-row form.
func RowsString(t core.Table) string {
	var b strings.Builder
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(row[col])
		}
		b.WriteString("\n")
	}
	return b.String()
}
