package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"example.com/supplementstack/internal/app"
	"example.com/supplementstack/internal/catalog"
	catalogpg "example.com/supplementstack/internal/catalog/postgres"
	"example.com/supplementstack/internal/config"
	"example.com/supplementstack/internal/domain"
	"example.com/supplementstack/internal/events"
	"example.com/supplementstack/internal/normalize"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and seed the supplement catalog",
	}
	cmd.AddCommand(newCatalogListCmd(root), newCatalogSeedCmd(root))
	return cmd
}

func newCatalogListCmd(root *rootOptions) *cobra.Command {
	var goal string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items ranked for a goal, by tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			components, err := app.Build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer components.Close()

			g := normalize.Goals([]string{goal})[0]
			items, err := components.View.ListItemsForGoal(cmd.Context(), g)
			if err != nil {
				return err
			}
			return printTiers(cmd.OutOrStdout(), g, items)
		},
	}
	cmd.Flags().StringVarP(&goal, "goal", "g", string(domain.GoalGeneralHealth), "Goal in free text, e.g. \"weight lifting\"")
	return cmd
}

func printTiers(w io.Writer, goal domain.Goal, items []domain.CatalogItem) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "goal: %s\n", goal)
	fmt.Fprintln(tw, "TIER\tID\tNAME\tPRICE\tEVIDENCE")
	for _, tier := range domain.PackingOrder {
		for _, item := range items {
			if item.TierFor(goal) != tier {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", tier, item.ID, item.Name, item.Price, item.EvidenceLevel)
		}
	}
	return tw.Flush()
}

func newCatalogSeedCmd(root *rootOptions) *cobra.Command {
	var notify bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the reference catalog to Postgres",
		Long: `Seed upserts the reference items and archetypes into the Postgres catalog store.
With --notify a catalog.updated event is published so running services reload.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Catalog.Store != config.StorePostgres {
				return errors.New("catalog seed requires catalog.store=postgres")
			}
			if notify && !cfg.Kafka.Enabled {
				return errors.New("--notify requires kafka.enabled")
			}
			components, err := app.Build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer components.Close()

			store, ok := components.Store.(*catalogpg.Store)
			if !ok {
				return errors.New("configured catalog store does not support seeding")
			}
			data := catalog.Data{Items: catalog.SeedItems(), Archetypes: catalog.SeedArchetypes()}
			if err := store.Seed(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d items and %d archetypes\n", len(data.Items), len(data.Archetypes))

			if !notify {
				return nil
			}
			ids := make([]string, 0, len(data.Items))
			for _, item := range data.Items {
				ids = append(ids, item.ID)
			}
			return components.Publisher.PublishCatalogUpdated(cmd.Context(), cfg.Kafka.CatalogTopic, events.CatalogUpdated{
				ItemIDs:   ids,
				Reason:    "seed",
				UpdatedAt: time.Now().UTC(),
			})
		},
	}
	cmd.Flags().BoolVar(&notify, "notify", false, "Publish catalog.updated after seeding")
	return cmd
}
