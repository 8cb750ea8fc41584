package main

import (
	"log"
	"os"

	"github.com/moyeohq/moyeo/core"
	"github.com/moyeohq/moyeo/core/account"
	"github.com/moyeohq/moyeo/core/record"
	logsvc "github.com/moyeohq/moyeo/services/logger"
	"github.com/moyeohq/moyeo/storage/csvstore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up storage
	store, err := csvstore.New(conf, logsvc.NewConsoleLogger(logger))
	errAndDie(err)

	recSvc := record.NewService(store, logsvc.NewConsoleLogger(logger), conf)

	// start CLI
	cli := commandLine{
		store:   store,
		recSvc:  recSvc,
		acctSvc: account.NewService(store, recSvc),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
