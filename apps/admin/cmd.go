package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/record"
	"github.com/moyeohq/moyeo/storage/csvstore"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store   *csvstore.Store
	recSvc  *record.Service
	acctSvc *account.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed - create the default clubs and memberships if none exist")
	fmt.Println("  integrity - report rows referencing missing parents")
	fmt.Println("  recover - replay interrupted cascading deletes")
	fmt.Println("  addaccount -username USERNAME -name NAME -role ROLE - add or update an account")
	fmt.Println("  resetpassword -username USERNAME - reset an account's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAccountCmd := flag.NewFlagSet("addaccount", flag.ExitOnError)
	addAccountUname := addAccountCmd.String("username", "", "The account's username. The password will be prompted next.")
	addAccountName := addAccountCmd.String("name", "", "The member's display name.")
	addAccountRole := addAccountCmd.String("role", account.RoleMember, "The account's role.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The account's username. The password will be prompted next.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "integrity":
		return cli.integrity()
	case "recover":
		return cli.recover()
	case "addaccount":
		if err := addAccountCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAccountUname == "" || *addAccountName == "" {
			addAccountCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addAccountCmd.Usage()
			return errHelp
		}
		return cli.addAccount(*addAccountUname, *addAccountName, *addAccountRole, string(pwd))
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.acctSvc.SetPassword(*resetPasswordUname, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() ([]byte, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	return pwd, err
}
