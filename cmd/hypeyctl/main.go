// Command hypeyctl is an administrative CLI for the hypey backend. It
// talks to the configured document store directly, bypassing the HTTP
// layer, which makes it handy for bootstrapping an app document or
// inspecting a user's collages from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hypey-backend/application/commands"
	cmdhandlers "hypey-backend/application/commands/handlers"
	"hypey-backend/application/queries"
	"hypey-backend/domain/core/entities"
	"hypey-backend/infrastructure/config"
	"hypey-backend/infrastructure/di"
	"hypey-backend/pkg/auth"
)

var (
	flagWebID   string
	flagStorage string
	flagToken   string
)

func main() {
	root := &cobra.Command{
		Use:           "hypeyctl",
		Short:         "Administrative tooling for the hypey backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagWebID, "webid", "", "WebID of the acting user")
	root.PersistentFlags().StringVar(&flagStorage, "storage", "", "Root storage URL of the acting user")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token forwarded to the document store")

	root.AddCommand(initAppCmd(), listCollagesCmd(), createCollageCmd())

	if err := root.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if flagToken != "" {
		ctx = auth.WithAccessToken(ctx, flagToken)
	}
	return ctx, cancel
}

func buildContainer() (*di.Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return di.InitializeContainer(cfg)
}

func requireIdentityFlags() error {
	if flagWebID == "" || flagStorage == "" {
		return fmt.Errorf("both --webid and --storage are required")
	}
	return nil
}

func initAppCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-app",
		Short: "Create the app document for a user's storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentityFlags(); err != nil {
				return err
			}
			container, err := buildContainer()
			if err != nil {
				return err
			}
			ctx, cancel := newContext()
			defer cancel()

			result, err := container.CommandBus.Send(ctx, commands.InitAppCommand{
				WebID:      flagWebID,
				StorageURL: flagStorage,
			})
			if err != nil {
				return err
			}

			app := result.(*entities.App)
			color.Green("App document initialized")
			fmt.Printf("  ref:              %s\n", app.Ref().String())
			fmt.Printf("  upload container: %s\n", app.ImageUploadContainer())
			return nil
		},
	}
}

func listCollagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-collages",
		Short: "List the collages in a user's app document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentityFlags(); err != nil {
				return err
			}
			container, err := buildContainer()
			if err != nil {
				return err
			}
			ctx, cancel := newContext()
			defer cancel()

			result, err := container.QueryBus.Ask(ctx, queries.ListCollagesQuery{
				WebID:      flagWebID,
				StorageURL: flagStorage,
			})
			if err != nil {
				return err
			}

			summaries := result.([]queries.CollageSummary)
			if len(summaries) == 0 {
				color.Yellow("No collages found")
				return nil
			}

			for _, s := range summaries {
				marker := color.CyanString("view")
				if s.Editable {
					marker = color.GreenString("edit")
				}
				fmt.Printf("[%s] %s  background=%s  elements=%d\n",
					marker, s.Ref, s.BackgroundImageURL, s.ElementCount)
			}
			return nil
		},
	}
}

func createCollageCmd() *cobra.Command {
	var background string

	cmd := &cobra.Command{
		Use:   "create-collage",
		Short: "Add a new collage to a user's app document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIdentityFlags(); err != nil {
				return err
			}
			if background == "" {
				return fmt.Errorf("--background is required")
			}
			container, err := buildContainer()
			if err != nil {
				return err
			}
			ctx, cancel := newContext()
			defer cancel()

			result, err := container.CommandBus.Send(ctx, commands.CreateCollageCommand{
				WebID:              flagWebID,
				StorageURL:         flagStorage,
				BackgroundImageURL: background,
			})
			if err != nil {
				return err
			}

			created := result.(*cmdhandlers.CreateCollageResult)
			if created.Status != cmdhandlers.StatusSaved {
				color.Yellow("Save failed, document rolled back to stored state")
				return nil
			}
			color.Green("Collage created")
			fmt.Printf("  ref: %s\n", created.Collage.Ref())
			return nil
		},
	}

	cmd.Flags().StringVar(&background, "background", "", "Background image URL for the new collage")
	return cmd
}
