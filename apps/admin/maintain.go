package main

import "fmt"

func (cli *commandLine) seed() error {
	return cli.store.Seed()
}

func (cli *commandLine) integrity() error {
	dangling, err := cli.recSvc.CheckIntegrity()
	if err != nil {
		return err
	}
	if len(dangling) == 0 {
		fmt.Println("no dangling references")
		return nil
	}
	for _, d := range dangling {
		fmt.Println(d)
	}
	return fmt.Errorf("%d dangling reference(s) found", len(dangling))
}

func (cli *commandLine) recover() error {
	n, err := cli.recSvc.Recover()
	if err != nil {
		return err
	}
	fmt.Printf("replayed %d pending delete(s)\n", n)
	return nil
}
