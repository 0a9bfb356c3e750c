package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var skillsPath string

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the active skills dictionary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listSkills(skillsPath, cmd.OutOrStdout())
	},
}

func init() {
	skillsCmd.Flags().StringVar(&skillsPath, "skills", "", "Path to skills dictionary (default: RESUME_SKILLS_PATH or the built-in list)")
	rootCmd.AddCommand(skillsCmd)
}

func listSkills(path string, out io.Writer) error {
	if path == "" {
		cfg, err := resolveConfig("")
		if err != nil {
			return err
		}
		path = cfg.SkillsPath
	}

	dict, err := loadDictionary(path)
	if err != nil {
		return err
	}

	for _, name := range dict.Names() {
		fmt.Fprintln(out, name)
	}
	fmt.Fprintf(out, "\n%d skills\n", dict.Len())
	return nil
}
