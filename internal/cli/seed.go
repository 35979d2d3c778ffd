package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"catalogadmin.cl/app/internal/database"
	"catalogadmin.cl/app/internal/modules/products"
)

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	ImageURL    string `yaml:"image_url"`
}

func newSeedCmd() *cobra.Command {
	var (
		file    string
		driver  string
		dsn     string
		migrate bool
	)
	cfg := defaults()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert products from a YAML file",
		Long:  "Insert the products listed in a YAML file. A product whose name already exists in its category is skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			items, err := readSeed(file)
			if err != nil {
				return err
			}

			db, err := database.Open(driver, dsn)
			if err != nil {
				return err
			}
			if migrate {
				if err := db.AutoMigrate(&products.Product{}); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			repo := products.NewRepo(db)
			var created, skipped int
			for i, it := range items {
				price, err := decimal.NewFromString(strings.TrimSpace(it.Price))
				if err != nil || price.IsNegative() {
					return fmt.Errorf("products[%d] %q: invalid price %q", i, it.Name, it.Price)
				}
				exists, err := hasProduct(ctx, repo, it.Category, it.Name)
				if err != nil {
					return err
				}
				if exists {
					skipped++
					continue
				}
				if _, err := repo.CreateProduct(ctx, it.Name, price.Round(2), it.Description, it.Category, it.ImageURL); err != nil {
					if products.IsDuplicateKey(err) {
						skipped++
						continue
					}
					return fmt.Errorf("products[%d] %q: %w", i, it.Name, err)
				}
				created++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d product(s), skipped %d\n", created, skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "./config/seed.yaml", "seed YAML file")
	cmd.Flags().StringVar(&driver, "db-driver", cfg.DBDriver, "database driver: mysql, postgres or sqlite")
	cmd.Flags().StringVar(&dsn, "dsn", cfg.DBDSN, "database DSN (defaults to DB_DSN)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create or update the products table first")
	return cmd
}

func readSeed(path string) ([]seedProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, it := range f.Products {
		if strings.TrimSpace(it.Name) == "" || strings.TrimSpace(it.Category) == "" {
			return nil, fmt.Errorf("products[%d]: name and category are required", i)
		}
	}
	return f.Products, nil
}

func hasProduct(ctx context.Context, repo *products.Repo, category, name string) (bool, error) {
	items, err := repo.ListByCategory(ctx, category)
	if err != nil {
		return false, err
	}
	for _, p := range items {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}
