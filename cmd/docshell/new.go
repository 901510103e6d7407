package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/docshell/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	ProjectName   string
	SiteName      string
	RepositoryURL string
}

func newNewCmd() *cobra.Command {
	var repo string
	cmd := &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a starter docs site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd.OutOrStdout(), args[0], repo)
		},
	}
	cmd.Flags().StringVar(&repo, "repo", "", "repository URL for project and edit links (default https://github.com/you/<dir>)")
	return cmd
}

func runNew(out io.Writer, dir, repo string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	name := filepath.Base(dir)
	if repo == "" {
		repo = "https://github.com/you/" + name
	}
	data := scaffoldData{
		ProjectName:   name,
		SiteName:      toTitle(name),
		RepositoryURL: strings.TrimSuffix(repo, "/"),
	}

	fmt.Fprintf(out, "Creating new docs site: %s\n\n", dir)

	const root = "templates"
	err := fs.WalkDir(scaffold.Templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		outPath := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(rel, ".tmpl")))

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := scaffold.Templates.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		tmpl, err := template.New(path.Base(p)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", p, err)
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", p, err)
		}

		fmt.Fprintf(out, "  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  docshell check")
	fmt.Fprintln(out, "  docshell serve")
	return nil
}

// toTitle converts a hyphenated name to a title-case string.
// e.g. "my-docs" -> "My Docs"
func toTitle(s string) string {
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(s))
}
