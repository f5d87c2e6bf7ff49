package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"sale-catalog/pkg/api"
	"sale-catalog/pkg/catalog"
	"sale-catalog/pkg/config"
	"sale-catalog/pkg/fetch/browser"
	"sale-catalog/pkg/fetch/collector"
	"sale-catalog/pkg/labels"
	"sale-catalog/pkg/logger"

	scalargo "github.com/bdpiprava/scalar-go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sale-catalog",
		Short:        "Serves the reduced products of a remote catalog",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "optional YAML config file")

	root.AddCommand(newServeCmd(), newListCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func newListCmd() *cobra.Command {
	var labelType string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the catalog once and print the reduced products as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := labels.ParseStyle(labelType)
			if err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			service := catalog.NewService(newFetcher(cfg))
			products, err := service.ReducedProducts(cmd.Context(), style)
			logger.Flush()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(api.ProductsResponse(products))
		},
	}
	cmd.Flags().StringVar(&labelType, "label", "", "price label type: ShowWasNow, ShowWasThenNow or ShowPercDiscount")
	return cmd
}

func newFetcher(cfg config.Config) catalog.Fetcher {
	if cfg.FetchMode == config.FetchModeBrowser {
		return browser.NewFetcher(cfg.CatalogURL, cfg.UserAgent, cfg.FetchTimeout)
	}
	return collector.NewFetcher(cfg.CatalogURL, cfg.UserAgent, cfg.FetchTimeout)
}

func newRouter(service api.ProductLister, specDir string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/products", api.NewProductsHandler(service))
	mux.HandleFunc("/healthz", api.HealthHandler)
	mux.HandleFunc("/", docsHandler(specDir))
	return api.WithRequestID(mux)
}

func docsHandler(specDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			api.WriteError(w, http.StatusNotFound, "Unknown path. Try GET /products", r.URL.Path)
			return
		}

		html, err := scalargo.NewV2(
			scalargo.WithSpecDir(specDir),
			scalargo.WithMetaDataOpts(
				scalargo.WithTitle("Sale Catalog API"),
			),
		)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, err.Error(), r.URL.Path)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	service := catalog.NewService(newFetcher(cfg))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(service, cfg.DocsSpecDir),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Catalog source %s (fetch mode %s, timeout %s)", cfg.CatalogURL, cfg.FetchMode, cfg.FetchTimeout)
	if ip := GetOutboundIP(); ip != nil {
		fmt.Printf("Local Network URL: http://%s:%s\n", ip.String(), cfg.Port)
	}
	fmt.Printf("Access URL: http://localhost:%s/products\n", cfg.Port)
	fmt.Printf("API Docs: http://localhost:%s/\n", cfg.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Flush()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func GetOutboundIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		addrs, _ := net.InterfaceAddrs()
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				return ipnet.IP
			}
		}
		return nil
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP
}
