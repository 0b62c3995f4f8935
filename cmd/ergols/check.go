package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate annotated contracts without writing templates",
		ArgsUsage: "[files or directories...]",
		Action:    runCheck,
	}
}

func runCheck(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	files, err := collectContractFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errNoContractFiles
	}

	st := newStyles(os.Stdout)

	var failed int

	for _, file := range files {
		tmpl, err := compileFile(file, 0)
		if err != nil {
			failed++

			fmt.Printf("%s %s %s\n",
				st.Fail.Render(st.SymbolFail),
				st.Bold.Render(file),
				st.Dim.Render(err.Error()))

			continue
		}

		fmt.Printf("%s %s %s\n",
			st.Pass.Render(st.SymbolPass),
			st.Bold.Render(file),
			st.Dim.Render(fmt.Sprintf("%s (%d parameters)", tmpl.Name, len(tmpl.Parameters))))
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d contract(s) failed to validate", failed), 1)
	}

	return nil
}
