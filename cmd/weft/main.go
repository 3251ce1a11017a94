package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"weft/internal/bootstrap"
	plugindto "weft/internal/modules/plugin/dto"
	"weft/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath, outDir string

	root := &cobra.Command{
		Use:           "weft",
		Short:         "Relation-graph site generator for markdown vaults",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "vault path")
	root.PersistentFlags().StringVar(&outDir, "out", "", "artifact output directory (default <vault>/.weft/out)")

	root.AddCommand(newTUICmd(&vaultPath, &outDir))
	root.AddCommand(newBuildCmd(&vaultPath, &outDir))
	root.AddCommand(newReindexCmd(&vaultPath, &outDir))
	root.AddCommand(newPagesCmd(&vaultPath, &outDir))
	root.AddCommand(newGraphCmd(&vaultPath, &outDir))
	root.AddCommand(newSiteCmd(&vaultPath, &outDir))
	root.AddCommand(newPluginCmd(&vaultPath, &outDir))
	return root
}

func loadApp(vaultPath, outDir string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(vaultPath, outDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

func newTUICmd(vaultPath, outDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run weft terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(*vaultPath, app)
		},
	}
}

func newBuildCmd(vaultPath, outDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Reindex pages, rebuild the relation graph, export artifacts, and run exporter plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := app.PagesCLI.Reindex(ctx); err != nil {
				return err
			}
			built, err := app.GraphCLI.Build(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "built graph: pages=%d nodes=%d edges=%d\n", built.PageCount, built.NodeCount, built.EdgeCount)
			exported, err := app.SiteCLI.Export(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "export %s:\n", exported.BuildID)
			for _, artifact := range exported.Artifacts {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), artifact)
			}
			return runEnabledExporters(ctx, cmd, app, cfg)
		},
	}
}

func newReindexCmd(vaultPath, outDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild SQLite projections from vault markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			if err := app.PagesCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func newPagesCmd(vaultPath, outDir *string) *cobra.Command {
	pages := &cobra.Command{Use: "pages", Short: "Vault page commands"}

	pages.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List vault pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			items, err := app.PagesCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no pages")
				return nil
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", item.Path, item.Title)
			}
			return nil
		},
	})

	var showSlug string
	show := &cobra.Command{
		Use:   "show --slug <slug>",
		Short: "Show page details and declared relations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showSlug) == "" {
				return fmt.Errorf("--slug is required")
			}
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			page, err := app.PagesCLI.Get(context.Background(), showSlug)
			if err != nil {
				return err
			}
			return printJSON(cmd, page)
		},
	}
	show.Flags().StringVar(&showSlug, "slug", "", "page slug")
	pages.AddCommand(show)

	var importTitle string
	importCmd := &cobra.Command{
		Use:   "import-pdf <path>",
		Short: "Import a PDF as a new vault page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			out, err := app.PagesCLI.ImportPDF(context.Background(), args[0], importTitle)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d pdf pages) note=%s\n", out.Slug, out.PDFPages, out.NotePath)
			return nil
		},
	}
	importCmd.Flags().StringVar(&importTitle, "title", "", "page title (defaults to file name)")
	pages.AddCommand(importCmd)

	return pages
}

func newGraphCmd(vaultPath, outDir *string) *cobra.Command {
	graph := &cobra.Command{Use: "graph", Short: "Relation graph queries"}

	graph.AddCommand(&cobra.Command{
		Use:   "view",
		Short: "Print the full graph view as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			view, err := app.GraphCLI.View(context.Background())
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	})

	var subRoot string
	var subTypes []string
	var subDepth int
	subgraph := &cobra.Command{
		Use:   "subgraph --root <slug>",
		Short: "Print a bounded subgraph around a root page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(subRoot) == "" {
				return fmt.Errorf("--root is required")
			}
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			view, err := app.GraphCLI.Subgraph(context.Background(), subRoot, subTypes, subDepth)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}
	subgraph.Flags().StringVar(&subRoot, "root", "", "root page slug")
	subgraph.Flags().StringSliceVar(&subTypes, "types", nil, "relation types to keep (default all)")
	subgraph.Flags().IntVar(&subDepth, "depth", 1, "hop bound from the root")
	graph.AddCommand(subgraph)

	var crumbSlug string
	breadcrumbs := &cobra.Command{
		Use:   "breadcrumbs --slug <slug>",
		Short: "Resolve the containment chain for a page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(crumbSlug) == "" {
				return fmt.Errorf("--slug is required")
			}
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			crumbs, err := app.GraphCLI.Breadcrumbs(context.Background(), crumbSlug)
			if err != nil {
				return err
			}
			for _, crumb := range crumbs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", crumb.Path, crumb.Title)
			}
			return nil
		},
	}
	breadcrumbs.Flags().StringVar(&crumbSlug, "slug", "", "page slug")
	graph.AddCommand(breadcrumbs)

	var relSlug string
	relations := &cobra.Command{
		Use:   "relations --slug <slug>",
		Short: "Show a page's full relation state, inferred inverses included",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(relSlug) == "" {
				return fmt.Errorf("--slug is required")
			}
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			rel, err := app.GraphCLI.Relations(context.Background(), relSlug)
			if err != nil {
				return err
			}
			return printJSON(cmd, rel)
		},
	}
	relations.Flags().StringVar(&relSlug, "slug", "", "page slug")
	graph.AddCommand(relations)

	var hubLimit int
	hubs := &cobra.Command{
		Use:   "hubs",
		Short: "List the most connected pages from the projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			items, err := app.GraphCLI.Hubs(context.Background(), hubLimit)
			if err != nil {
				return err
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", item.Slug, item.Connections, item.Title)
			}
			return nil
		},
	}
	hubs.Flags().IntVar(&hubLimit, "limit", 20, "max pages to list")
	graph.AddCommand(hubs)

	graph.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search projected pages by slug or title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			items, err := app.GraphCLI.Search(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", item.ID, item.Connections, item.Title)
			}
			return nil
		},
	})

	graph.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List the relation types the graph understands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			for _, kind := range app.GraphCLI.Kinds() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
			return nil
		},
	})

	return graph
}

func newSiteCmd(vaultPath, outDir *string) *cobra.Command {
	site := &cobra.Command{Use: "site", Short: "Site artifact commands"}

	site.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Write index, backlinks, graph, and manifest artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			out, err := app.SiteCLI.Export(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "export %s: pages=%d edges=%d\n", out.BuildID, out.PageCount, out.EdgeCount)
			for _, artifact := range out.Artifacts {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), artifact)
			}
			return nil
		},
	})

	site.AddCommand(&cobra.Command{
		Use:   "index",
		Short: "Print the page index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			entries, err := app.SiteCLI.Index(context.Background())
			if err != nil {
				return err
			}
			return printJSON(cmd, entries)
		},
	})

	var backlinkSlug string
	backlinks := &cobra.Command{
		Use:   "backlinks --slug <slug>",
		Short: "List pages whose bodies link to a page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(backlinkSlug) == "" {
				return fmt.Errorf("--slug is required")
			}
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			links, err := app.SiteCLI.Backlinks(context.Background(), backlinkSlug)
			if err != nil {
				return err
			}
			if len(links) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no backlinks")
				return nil
			}
			for _, link := range links {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", link.Path, link.Title)
			}
			return nil
		},
	}
	backlinks.Flags().StringVar(&backlinkSlug, "slug", "", "page slug")
	site.AddCommand(backlinks)

	return site
}

func newPluginCmd(vaultPath, outDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var commandPluginName string
	commandsCmd := &cobra.Command{
		Use:   "commands --plugin <name>",
		Short: "List commands exposed by a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(commandPluginName) == "" {
				return fmt.Errorf("--plugin is required")
			}
			app, _, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			commands, err := app.PluginCLI.ListCommands(context.Background(), commandPluginName)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no commands")
				return nil
			}
			for _, item := range commands {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s kind=%s timeout_ms=%d title=%q\n", item.ID, item.Kind, item.TimeoutMS, item.Title)
			}
			return nil
		},
	}
	commandsCmd.Flags().StringVar(&commandPluginName, "plugin", "", "plugin name")
	plugin.AddCommand(commandsCmd)

	var execPluginName, execCommandID, execInputJSON, execSlug string
	execCmd := &cobra.Command{
		Use:   "exec --plugin <name> --command <id>",
		Short: "Execute a plugin command capability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(execPluginName) == "" || strings.TrimSpace(execCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			if err := validateJSONInput(execInputJSON); err != nil {
				return err
			}
			app, cfg, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			out, err := app.PluginCLI.Execute(context.Background(), plugindto.ExecuteInput{
				PluginName: execPluginName,
				CommandID:  execCommandID,
				InputJSON:  execInputJSON,
				Slug:       execSlug,
				VaultPath:  cfg.VaultPath,
				OutDir:     cfg.OutDir,
				Cwd:        cfg.VaultPath,
			})
			if err != nil {
				return err
			}
			printExecuteOutput(cmd, out)
			return nil
		},
	}
	execCmd.Flags().StringVar(&execPluginName, "plugin", "", "plugin name")
	execCmd.Flags().StringVar(&execCommandID, "command", "", "command id")
	execCmd.Flags().StringVar(&execInputJSON, "input-json", "", "JSON input payload")
	execCmd.Flags().StringVar(&execSlug, "slug", "", "optional page slug")
	plugin.AddCommand(execCmd)

	var exportPluginName, exportCommandID, exportInputJSON, exportSlug string
	exportCmd := &cobra.Command{
		Use:   "export --plugin <name> --command <id>",
		Short: "Run an exporter plugin over the generated artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exportPluginName) == "" || strings.TrimSpace(exportCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			if err := validateJSONInput(exportInputJSON); err != nil {
				return err
			}
			app, cfg, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			out, err := app.PluginCLI.Export(context.Background(), plugindto.ExecuteInput{
				PluginName: exportPluginName,
				CommandID:  exportCommandID,
				InputJSON:  exportInputJSON,
				Slug:       exportSlug,
				VaultPath:  cfg.VaultPath,
				OutDir:     cfg.OutDir,
				Cwd:        cfg.VaultPath,
			})
			if err != nil {
				return err
			}
			printExecuteOutput(cmd, out)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportPluginName, "plugin", "", "plugin name")
	exportCmd.Flags().StringVar(&exportCommandID, "command", "", "command id")
	exportCmd.Flags().StringVar(&exportInputJSON, "input-json", "", "JSON input payload")
	exportCmd.Flags().StringVar(&exportSlug, "slug", "", "optional page slug")
	plugin.AddCommand(exportCmd)

	var ttyPluginName, ttyCommandID, ttyInputJSON, ttySlug string
	ttyCmd := &cobra.Command{
		Use:   "tty --plugin <name> --command <id>",
		Short: "Prepare and run fullscreen tty plugin command",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(ttyPluginName) == "" || strings.TrimSpace(ttyCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			if err := validateJSONInput(ttyInputJSON); err != nil {
				return err
			}
			app, cfg, err := loadApp(*vaultPath, *outDir)
			if err != nil {
				return err
			}
			plan, err := app.PluginCLI.PrepareTTY(context.Background(), plugindto.TTYPrepareInput{
				PluginName: ttyPluginName,
				CommandID:  ttyCommandID,
				InputJSON:  ttyInputJSON,
				Slug:       ttySlug,
				VaultPath:  cfg.VaultPath,
				OutDir:     cfg.OutDir,
				Cwd:        cfg.VaultPath,
			})
			if err != nil {
				return err
			}
			return runTTYPlan(plan)
		},
	}
	ttyCmd.Flags().StringVar(&ttyPluginName, "plugin", "", "plugin name")
	ttyCmd.Flags().StringVar(&ttyCommandID, "command", "", "command id")
	ttyCmd.Flags().StringVar(&ttyInputJSON, "input-json", "", "JSON input payload")
	ttyCmd.Flags().StringVar(&ttySlug, "slug", "", "optional page slug")
	plugin.AddCommand(ttyCmd)

	return plugin
}

// runEnabledExporters runs every export-kind command of each enabled plugin
// over the freshly written artifacts. A failing plugin is reported and the
// rest still run.
func runEnabledExporters(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, cfg config.Config) error {
	plugins, err := app.PluginCLI.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range plugins {
		if !p.Enabled || !hasCapability(p.Capabilities, "export") {
			continue
		}
		commands, err := app.PluginCLI.ListCommands(ctx, p.Name)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "plugin %s: %v\n", p.Name, err)
			continue
		}
		for _, command := range commands {
			if command.Kind != "export" {
				continue
			}
			out, err := app.PluginCLI.Export(ctx, plugindto.ExecuteInput{
				PluginName: p.Name,
				CommandID:  command.ID,
				VaultPath:  cfg.VaultPath,
				OutDir:     cfg.OutDir,
				Cwd:        cfg.VaultPath,
			})
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "plugin %s %s: %v\n", p.Name, command.ID, err)
				continue
			}
			printExecuteOutput(cmd, out)
		}
	}
	return nil
}

func hasCapability(capabilities []string, want string) bool {
	for _, capability := range capabilities {
		if capability == want {
			return true
		}
	}
	return false
}

func printExecuteOutput(cmd *cobra.Command, out plugindto.ExecuteOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugin=%s command=%s exit=%d\n", out.PluginName, out.CommandID, out.ExitCode)
	if strings.TrimSpace(out.Stdout) != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Stdout)
	}
	if strings.TrimSpace(out.Stderr) != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
	}
	if strings.TrimSpace(out.OutputJSON) != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
	}
}

func printJSON(cmd *cobra.Command, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func validateJSONInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if !json.Valid([]byte(input)) {
		return fmt.Errorf("--input-json must be valid JSON")
	}
	return nil
}

func runTTYPlan(plan plugindto.TTYPrepareOutput) error {
	if len(plan.Argv) == 0 {
		return fmt.Errorf("plugin tty plan has empty argv")
	}
	cmd := exec.Command(plan.Argv[0], plan.Argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if plan.Cwd != "" {
		cmd.Dir = plan.Cwd
	}
	env := os.Environ()
	for key, value := range plan.Env {
		env = append(env, key+"="+value)
	}
	cmd.Env = env
	return cmd.Run()
}
