package app

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nationalmap/px3-catalog-server/internal/config"
	"github.com/nationalmap/px3-catalog-server/internal/schema"
	"github.com/nationalmap/px3-catalog-server/internal/service"
	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load a catalog document and print its contents",
	Long: `Load the Px3 catalog document named by the configuration file, build the
catalog tree, and print the services it contains along with any entries that
were dropped during the build. Useful for checking a document before deploying
it to a server.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	inspectCmd.Flags().Bool("validate", false, "Validate the document against the Px3 schema before building")

	if err := inspectCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
}

func runInspect(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	validate, err := cmd.Flags().GetBool("validate")
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	loader, err := service.NewDocumentLoader(cfg)
	if err != nil {
		return err
	}

	data, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog document: %w", err)
	}

	if validate || cfg.ShouldValidateSchema() {
		if err := schema.Validate(data); err != nil {
			return fmt.Errorf("catalog document rejected: %w", err)
		}
		fmt.Println("Schema validation passed")
	}

	tree, err := px3.NewBuilder().Parse(data)
	if err != nil {
		return fmt.Errorf("failed to build catalog tree: %w", err)
	}

	fmt.Printf("Catalog %s (%s): %d services, %d groups, %d locators\n\n",
		cfg.GetCatalogName(), loader.Source(), len(tree.Services), len(tree.ServiceGroups), len(tree.Locators))

	printServiceTable(tree)

	if len(tree.Rejected) > 0 {
		fmt.Println()
		printRejectedTable(tree)
	}

	return nil
}

func printServiceTable(tree *px3.ConfigTree) {
	table := tablewriter.NewTable(os.Stdout)
	table.Header("ID", "Type", "URL", "Opacity", "Hidden")

	for _, id := range sortedKeys(tree.Services) {
		svc := tree.Services[id]
		_ = table.Append(
			svc.ID,
			string(svc.Type),
			svc.URL,
			strconv.FormatFloat(svc.Opacity, 'f', -1, 64),
			strconv.FormatBool(svc.DisableViewing),
		)
	}

	_ = table.Render()
}

func printRejectedTable(tree *px3.ConfigTree) {
	table := tablewriter.NewTable(os.Stdout)
	table.Header("Section", "Key")

	for _, rej := range tree.Rejected {
		_ = table.Append(rej.Section, rej.Key)
	}

	_ = table.Render()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
