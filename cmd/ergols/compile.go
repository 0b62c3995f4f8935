package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mkerr/ergols"
	"github.com/mkerr/ergols/template"
)

var errNoContractFiles = errors.New("no .es contract files found")

const filePermissions = 0o600

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Aliases:   []string{"c"},
		Usage:     "Compile annotated contracts to JSON templates",
		ArgsUsage: "[files or directories...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output directory (overrides config)",
			},
		},
		Action: runCompile,
	}
}

func runCompile(_ context.Context, cmd *cli.Command) error {
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

	outDir := cmd.String("out")
	treeVersion := 0

	cfg, err := ergols.LoadConfig(filepath.Dir(files[0]))
	if err == nil {
		if outDir == "" {
			outDir = cfg.Compile.Out
		}

		treeVersion = cfg.Compile.TreeVersion
	} else if !errors.Is(err, ergols.ErrConfigNotFound) {
		return err
	}

	st := newStyles(os.Stdout)

	var failed int

	for _, file := range files {
		tmpl, err := compileFile(file, treeVersion)
		if err != nil {
			failed++

			fmt.Printf("%s %s %s\n",
				st.Fail.Render(st.SymbolFail),
				st.Bold.Render(file),
				st.Dim.Render(err.Error()))

			continue
		}

		outPath := templatePath(file, tmpl.Name, outDir)

		data, err := tmpl.Encode()
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		if outDir != "" {
			if err := os.MkdirAll(outDir, 0o750); err != nil {
				return err
			}
		}

		if err := os.WriteFile(outPath, data, filePermissions); err != nil {
			return err
		}

		fmt.Printf("%s %s %s\n",
			st.Pass.Render(st.SymbolPass),
			st.Bold.Render(file),
			st.Dim.Render("-> "+outPath))
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d contract(s) failed to compile", failed), 1)
	}

	return nil
}

func compileFile(path string, treeVersion int) (*template.ContractTemplate, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- paths come from user args
	if err != nil {
		return nil, err
	}

	draft, err := template.Extract(string(data))
	if err != nil {
		return nil, err
	}

	draft.TreeVersion = treeVersion

	return template.Compile(draft)
}

// templatePath decides where a compiled template lands: next to the
// source file by default, or under outDir when one is configured.
func templatePath(source, name, outDir string) string {
	dir := filepath.Dir(source)
	if outDir != "" {
		dir = outDir
	}

	return filepath.Join(dir, name+".json")
}

func collectContractFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}

				if !d.IsDir() && strings.HasSuffix(path, ".es") {
					files = append(files, path)
				}

				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			files = append(files, arg)
		}
	}

	return files, nil
}
