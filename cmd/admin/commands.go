package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"folio/internal/auth"
	"folio/internal/portfolio"
)

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long:  `Without an argument the password is read from the first line of stdin.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show [section]",
		Short: "Print a section, or the whole portfolio",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := "all"
			if len(args) == 1 {
				section = args[0]
			}
			return a.withSite(cmd, func(_ context.Context, site *portfolio.Site) error {
				value, err := sectionValue(site, section)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), output, value)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	return cmd
}

func sectionValue(site *portfolio.Site, name string) (any, error) {
	switch name {
	case "all":
		return site.Snapshot(), nil
	case portfolio.SectionHero:
		return site.Hero(), nil
	case portfolio.SectionAbout:
		return site.About(), nil
	case "achievements":
		return portfolio.Achievements(), nil
	case "contact":
		return portfolio.ContactLinks(), nil
	}
	section, err := lookupList(site, name)
	if err != nil {
		return nil, err
	}
	return section.items(), nil
}

func newAddCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "add <section>",
		Short: "Append a record to a list section",
		Long: `Fields are given as --set field=value using the form field names.
List fields (details, activities, features, tech, skills) take comma
separated text.`,
		Example: `  folio-admin add projects --set title=Folio --set "tech=Go, Redis"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseSets(sets)
			if err != nil {
				return err
			}
			return a.withSite(cmd, func(ctx context.Context, site *portfolio.Site) error {
				section, err := lookupList(site, args[0])
				if err != nil {
					return err
				}
				record, err := section.add(ctx, fields)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), "json", record)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value (repeatable)")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "edit <section> [id]",
		Short: "Change fields of a record, or of the hero/about section",
		Example: `  folio-admin edit hero --set role="Staff Engineer"
  folio-admin edit education 2 --set grade=`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseSets(sets)
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				return fmt.Errorf("nothing to change, pass at least one --set")
			}
			return a.withSite(cmd, func(ctx context.Context, site *portfolio.Site) error {
				record, err := editSection(ctx, site, args, fields)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), "json", record)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value (repeatable)")
	return cmd
}

func editSection(ctx context.Context, site *portfolio.Site, args []string, fields map[string]string) (any, error) {
	switch args[0] {
	case portfolio.SectionHero, portfolio.SectionAbout:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s has no records, drop the id", args[0])
		}
	default:
		if len(args) != 2 {
			return nil, fmt.Errorf("edit %s needs a record id", args[0])
		}
	}

	switch args[0] {
	case portfolio.SectionHero:
		hero := site.Hero()
		if err := applySets(&hero, fields); err != nil {
			return nil, err
		}
		return site.SetHero(ctx, hero), nil
	case portfolio.SectionAbout:
		about := site.About()
		if err := applySets(&about, fields); err != nil {
			return nil, err
		}
		return site.SetAbout(ctx, about), nil
	}

	section, err := lookupList(site, args[0])
	if err != nil {
		return nil, err
	}
	return section.edit(ctx, args[1], fields)
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <section> <id>",
		Short: "Remove a record from a list section",
		Long: `When delete confirmation is enabled (EDITOR_CONFIRM_DELETE) the record
is shown and you are asked to confirm; --yes answers for you.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSite(cmd, func(ctx context.Context, site *portfolio.Site) error {
				section, err := lookupList(site, args[0])
				if err != nil {
					return err
				}

				in := bufio.NewReader(cmd.InOrStdin())
				out := cmd.OutOrStdout()
				deleted, err := section.remove(ctx, args[1], func(record any) (bool, error) {
					if yes {
						return true, nil
					}
					if err := render(out, "json", record); err != nil {
						return false, err
					}
					fmt.Fprintf(out, "Delete %s %s? [y/N] ", args[0], args[1])
					answer, err := in.ReadString('\n')
					if err != nil && err != io.EOF {
						return false, err
					}
					answer = strings.ToLower(strings.TrimSpace(answer))
					return answer == "y" || answer == "yes", nil
				})
				if err != nil {
					return err
				}
				if deleted {
					fmt.Fprintf(out, "Deleted %s %s\n", args[0], args[1])
				} else {
					fmt.Fprintln(out, "Cancelled, nothing changed")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <section>",
		Short: "Restore a section's default content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSite(cmd, func(ctx context.Context, site *portfolio.Site) error {
				var value any
				switch args[0] {
				case portfolio.SectionHero:
					value = site.ResetHero(ctx)
				case portfolio.SectionAbout:
					value = site.ResetAbout(ctx)
				default:
					section, err := lookupList(site, args[0])
					if err != nil {
						return err
					}
					value = section.reset(ctx)
				}
				return render(cmd.OutOrStdout(), "json", value)
			})
		},
	}
}

// render prints value as indented JSON or as block-style YAML keyed by the
// JSON field names.
func render(w io.Writer, format string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	switch strings.ToLower(format) {
	case "json", "":
		_, err = fmt.Fprintln(w, string(raw))
		return err
	case "yaml", "yml":
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return fmt.Errorf("convert to yaml: %w", err)
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// JSON parses into flow-style, quoted nodes.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
