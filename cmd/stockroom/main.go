// Command stockroom is a small operational CLI over the storage layer:
// select a backend, seed demo data, and inspect inventory and orders.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/stockroomhq/stockroom"
	"github.com/stockroomhq/stockroom/auth"
	"github.com/stockroomhq/stockroom/seed"
)

func main() {
	app := &cli.App{
		Name:  "stockroom",
		Usage: "inventory and order storage over a pluggable backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			// .env is optional; real environment variables win.
			_ = godotenv.Load()
			setupLogger(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "select and initialize a storage backend",
				Action: runInit,
			},
			{
				Name:   "seed",
				Usage:  "populate the active backend with demo data",
				Action: runSeed,
			},
			{
				Name:  "inventory",
				Usage: "inspect inventory",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list all inventory items",
						Action: runInventoryList,
					},
					{
						Name:  "low-stock",
						Usage: "list items below a stock threshold",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "threshold", Value: 0, Usage: "quantity threshold (0 = default)"},
						},
						Action: runLowStock,
					},
				},
			},
			{
				Name:  "orders",
				Usage: "inspect orders",
				Subcommands: []*cli.Command{
					{
						Name:  "recent",
						Usage: "list the most recent orders",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 0, Usage: "number of orders (0 = default)"},
						},
						Action: runRecentOrders,
					},
				},
			},
			{
				Name:   "whoami",
				Usage:  "show the signed-in user",
				Action: runWhoami,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func newManager() (*stockroom.Manager, error) {
	cfg, err := stockroom.FromEnv()
	if err != nil {
		return nil, err
	}
	return stockroom.NewManager(stockroom.WithConfig(cfg)), nil
}

func runInit(c *cli.Context) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	kind, err := mgr.Init(c.Context)
	if err != nil {
		return err
	}
	if mgr.Degraded() {
		fmt.Printf("backend: %s (degraded, no real connection)\n", kind)
		return nil
	}
	fmt.Printf("backend: %s\n", kind)
	return nil
}

func runSeed(c *cli.Context) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	if _, err := mgr.Init(c.Context); err != nil {
		return err
	}
	written := seed.Populate(c.Context, mgr.Store(), slog.Default())
	fmt.Printf("seeded %d entities\n", written)
	return nil
}

func runInventoryList(c *cli.Context) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	items, err := mgr.Inventory().Items(c.Context)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%s\t%s\t%s\tqty=%d\tprice=%.2f\n",
			item.ID, item.SKU, item.Name, item.Quantity, item.Price)
	}
	return nil
}

func runLowStock(c *cli.Context) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	items, err := mgr.Inventory().LowStockItems(c.Context, c.Int("threshold"))
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%s\t%s\tqty=%d\n", item.SKU, item.Name, item.Quantity)
	}
	return nil
}

func runRecentOrders(c *cli.Context) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	orders, err := mgr.Orders().RecentOrders(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Printf("%s\t%s\t%s/%s\ttotal=%.2f\tlines=%d\n",
			o.ID, o.CustomerName, o.Status, o.PaymentStatus, o.Total, len(o.Items))
	}
	return nil
}

func runWhoami(c *cli.Context) error {
	cfg, err := stockroom.FromEnv()
	if err != nil {
		return err
	}
	st, err := auth.Open(cfg.AuthPath, slog.Default())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Initialize(c.Context); err != nil {
		return err
	}
	u, err := st.CurrentUser(c.Context)
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	return nil
}
