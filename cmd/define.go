package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/models"
)

var (
	defineKind string
	defineJSON bool
)

// defineCmd groups the tag and feature glossary commands.
var defineCmd = &cobra.Command{
	Use:   "define",
	Short: "Maintain tag and feature definitions",
	Long: `Maintain a glossary of tag and feature definitions kept beside the
task document. Definitions document what a tag means so a team shares
one vocabulary.`,
}

var defineAddCmd = &cobra.Command{
	Use:   "add <name> <description>",
	Short: "Add a definition",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := GetDefinitionStore()

		def, err := defs.CreateDefinition(args[0], models.DefinitionKind(defineKind), joinArgs(args[1:]))
		if err != nil {
			return fmt.Errorf("failed to add definition: %w", err)
		}
		fmt.Printf("✔ Defined %s '%s'\n", def.Kind, def.Name)
		return nil
	},
}

var defineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := GetDefinitionStore()

		kind := models.DefinitionKind("")
		if cmd.Flags().Changed("kind") {
			kind = models.DefinitionKind(defineKind)
		}
		definitions, err := defs.ListDefinitions(kind)
		if err != nil {
			return fmt.Errorf("failed to list definitions: %w", err)
		}

		if defineJSON {
			return printJSON(definitions)
		}
		if len(definitions) == 0 {
			fmt.Println("No definitions yet.")
			return nil
		}

		// Case-insensitive display order regardless of how names are
		// capitalized on disk.
		collate.New(language.English, collate.IgnoreCase).Sort(sortableDefinitions(definitions))

		table := ui.Table{
			Headers:  []string{"NAME", "KIND", "DESCRIPTION"},
			MaxWidth: 60,
		}
		for _, def := range definitions {
			table.Rows = append(table.Rows, []string{def.Name, string(def.Kind), def.Description})
		}
		fmt.Print(table.Render())
		return nil
	},
}

var defineRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := GetDefinitionStore()

		if err := defs.DeleteDefinition(args[0]); err != nil {
			return fmt.Errorf("failed to remove definition: %w", err)
		}
		fmt.Printf("✔ Removed definition '%s'\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(defineCmd)
	defineCmd.AddCommand(defineAddCmd, defineListCmd, defineRmCmd)

	defineCmd.PersistentFlags().StringVarP(&defineKind, "kind", "k", "tag", "Definition kind (tag or feature)")
	defineListCmd.Flags().BoolVar(&defineJSON, "json", false, "Emit JSON instead of a table")
}

// sortableDefinitions adapts definitions to collate.Lister, keyed on
// Name.
type sortableDefinitions []models.Definition

func (s sortableDefinitions) Len() int           { return len(s) }
func (s sortableDefinitions) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s sortableDefinitions) Bytes(i int) []byte { return []byte(s[i].Name) }
