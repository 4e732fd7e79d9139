package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
)

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the known third-party services",
	Long: `Print the built-in service catalog used during analysis, grouped by
category. Services flagged as critical or carrying known CVEs are marked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := services.DefaultCatalog()
		byCategory := map[services.Category][]services.Descriptor{}
		for _, d := range catalog.Services() {
			byCategory[d.Category] = append(byCategory[d.Category], d)
		}

		categories := make([]services.Category, 0, len(byCategory))
		for c := range byCategory {
			categories = append(categories, c)
		}
		sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

		for _, c := range categories {
			if catalogCategory != "" && string(c) != strings.ToLower(catalogCategory) {
				continue
			}
			fmt.Printf("%s\n", colorInfo(strings.ToUpper(string(c))))
			entries := byCategory[c]
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
			for _, d := range entries {
				var marks []string
				if d.Critical {
					marks = append(marks, colorWarn("critical"))
				}
				if len(d.KnownCVEs) > 0 {
					marks = append(marks, colorError(fmt.Sprintf("%d CVEs", len(d.KnownCVEs))))
				}
				suffix := ""
				if len(marks) > 0 {
					suffix = " [" + strings.Join(marks, ", ") + "]"
				}
				fmt.Printf("  %-22s ~%dms%s\n", d.Name, d.EstimatedLoadMS, suffix)
			}
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "show only one category")
}
