package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ember/internal/project"
)

const helloSource = `@greeting = "hello";
@answer u32 :: 42;

fun main() u32 {}
`

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new ember project",
	Long: `Init creates ember.toml and a main.em entry file. Without an argument it
initializes the current directory; a non-existing path is created.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipManifest: "true"},
	RunE:        runInit,
}

func init() {
	initCmd.Flags().String("name", "", "package name (default: directory name)")
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath, err := project.Init(target, name)
	if err != nil {
		return err
	}
	created := []string{manifestPath}

	mainPath := filepath.Join(filepath.Dir(manifestPath), "main.em")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(helloSource), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		created = append(created, mainPath)
	}

	if !app.quiet {
		for _, p := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", p)
		}
	}
	return nil
}
