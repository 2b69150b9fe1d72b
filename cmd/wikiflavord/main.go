package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/authorizer"
	icontext "github.com/xwikiorgci/application-wikiflavor/context"
	"github.com/xwikiorgci/application-wikiflavor/creation"
	"github.com/xwikiorgci/application-wikiflavor/flavors"
	"github.com/xwikiorgci/application-wikiflavor/inmem"
	"github.com/xwikiorgci/application-wikiflavor/logger"
	"github.com/xwikiorgci/application-wikiflavor/sqlite"
	"github.com/xwikiorgci/application-wikiflavor/transport"
)

func main() {
	if err := wikiflavorCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	httpBindAddress string
	sqlitePath      string
	flavorSeedPath  string
	mainWikiID      string
)

func init() {
	viper.SetEnvPrefix("WIKIFLAVOR")

	wikiflavorCmd.Flags().StringVar(&httpBindAddress, "http-bind-address", ":8077", "bind address for the rest http api")
	viper.BindEnv("HTTP_BIND_ADDRESS")
	if h := viper.GetString("HTTP_BIND_ADDRESS"); h != "" {
		httpBindAddress = h
	}

	wikiflavorCmd.Flags().StringVar(&sqlitePath, "sqlite-path", sqlite.DefaultFilename, "path to the sqlite metadata database")
	viper.BindEnv("SQLITE_PATH")
	if h := viper.GetString("SQLITE_PATH"); h != "" {
		sqlitePath = h
	}

	wikiflavorCmd.Flags().StringVar(&flavorSeedPath, "flavor-seed-path", "", "path to a toml flavor catalog loaded at startup")
	viper.BindEnv("FLAVOR_SEED_PATH")
	if h := viper.GetString("FLAVOR_SEED_PATH"); h != "" {
		flavorSeedPath = h
	}

	wikiflavorCmd.Flags().StringVar(&mainWikiID, "main-wiki-id", "xwiki", "identifier of the main wiki")
	viper.BindEnv("MAIN_WIKI_ID")
	if h := viper.GetString("MAIN_WIKI_ID"); h != "" {
		mainWikiID = h
	}
}

var wikiflavorCmd = &cobra.Command{
	Use:   "wikiflavord",
	Short: "wiki flavor provisioning service",
	RunE:  wikiflavorF,
}

func wikiflavorF(cmd *cobra.Command, args []string) error {
	log := logger.New(os.Stdout)
	defer log.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	store, err := sqlite.NewSqlStore(sqlitePath, log.With(zap.String("service", "sqlite")))
	if err != nil {
		return errors.Wrap(err, "failed opening sqlite database")
	}
	defer store.Close()

	ctx := context.Background()
	if err := sqlite.NewMigrator(store, log.With(zap.String("service", "sqlite-migrations"))).Up(ctx, sqlite.Migrations); err != nil {
		return errors.Wrap(err, "failed bringing up sqlite migrations")
	}

	flavorSvc := flavors.NewService(log.With(zap.String("service", "flavors")), store)
	var flavorReader wikiflavor.FlavorService = authorizer.NewFlavorService(
		log.With(zap.String("service", "authorizer")),
		flavors.NewLoggingService(log.With(zap.String("service", "flavors")), flavorSvc),
	)

	if flavorSeedPath != "" {
		// seeding goes through the permission checks like any other write
		seedCtx := icontext.SetAuthorizer(ctx, serverAuth{})
		if _, err := flavors.Seed(seedCtx, log.With(zap.String("service", "flavors")), flavorReader, flavorSeedPath); err != nil {
			return errors.Wrap(err, "failed seeding flavor registry")
		}
	}

	descriptors := inmem.NewWikiDescriptorService(mainWikiID)
	provisioner := inmem.NewProvisioner(log.With(zap.String("service", "provisioner")))

	creationSvc := creation.NewService(
		log.With(zap.String("service", "creation")),
		descriptors,
		provisioner,
		creation.WithMetrics(reg),
	)

	var creator wikiflavor.WikiCreationService = authorizer.NewWikiCreationService(
		log.With(zap.String("service", "authorizer")),
		creationSvc,
		descriptors,
	)

	handler := transport.NewWikiFlavorHandler(log.With(zap.String("handler", "wikiflavor")), flavorReader, creator)

	r := chi.NewRouter()
	r.Use(serverAuthorizer)
	r.Mount(handler.Prefix(), handler)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &nethttp.Server{
		Addr:    httpBindAddress,
		Handler: r,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("Listening", zap.String("transport", "http"), zap.String("addr", httpBindAddress))
		errc <- srv.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return errors.Wrap(err, "http server failed")
	case sig := <-sigs:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http shutdown failed")
	}

	// let queued provisioning work finish before the store goes away
	creationSvc.Wait()
	return nil
}

// serverAuthorizer installs the server's own all-access authorizer on every
// request. Deployments behind the platform's authentication proxy replace
// this with the authenticated identity.
func serverAuthorizer(next nethttp.Handler) nethttp.Handler {
	fn := func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ctx := icontext.SetAuthorizer(r.Context(), serverAuth{})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return nethttp.HandlerFunc(fn)
}

type serverAuth struct{}

func (serverAuth) PermissionSet() (wikiflavor.PermissionSet, error) {
	return wikiflavor.PermissionSet{
		{Action: wikiflavor.ReadAction, Resource: wikiflavor.Resource{Type: wikiflavor.WikisResourceType}},
		{Action: wikiflavor.WriteAction, Resource: wikiflavor.Resource{Type: wikiflavor.WikisResourceType}},
		{Action: wikiflavor.ReadAction, Resource: wikiflavor.Resource{Type: wikiflavor.FlavorsResourceType}},
		{Action: wikiflavor.WriteAction, Resource: wikiflavor.Resource{Type: wikiflavor.FlavorsResourceType}},
	}, nil
}

func (serverAuth) Identifier() string { return "wikiflavord" }

func (serverAuth) Kind() string { return "server" }
