package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/pratyaywrites/profile-backend/pkg/auth"
	"github.com/pratyaywrites/profile-backend/pkg/blogs"
	"github.com/pratyaywrites/profile-backend/pkg/daemon"
	daemonhttp "github.com/pratyaywrites/profile-backend/pkg/http/daemon"
	"github.com/pratyaywrites/profile-backend/pkg/store"
	mongostore "github.com/pratyaywrites/profile-backend/pkg/store/mongo"
)

var version = "unreleased"

func main() {
	// Flag domain.
	fs := pflag.NewFlagSet("default", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "DESCRIPTION\n")
		fmt.Fprintf(os.Stderr, "  profiled is the profile backend daemon.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		fs.PrintDefaults()
	}
	var (
		listenAddr        = fs.StringP("listen", "l", ":3000", "Listen address for API clients")
		mongoURL          = fs.String("mongo-url", "", "MongoDB connection URI; taken from $MONGODB_URI if not set")
		mongoTimeout      = fs.Duration("mongo-timeout", 10*time.Second, "Timeout for connecting to (and pinging) MongoDB")
		adminPassword     = fs.String("admin-password", "", "Password gating document writes; taken from $ADMIN_PASS if not set. Empty disables writes")
		hashnodeEndpoint  = fs.String("hashnode-endpoint", blogs.DefaultEndpoint, "Hashnode GraphQL endpoint")
		hashnodeHost      = fs.String("hashnode-host", "pratyaywrites.hashnode.dev", "Hashnode publication host to fetch blog posts from")
		hashnodeTimeout   = fs.Duration("hashnode-timeout", 10*time.Second, "Timeout for Hashnode requests")
		memcachedHostname = fs.String("memcached-hostname", "", "Hostname:port of a memcached to cache blog listings; empty disables caching")
		memcachedTimeout  = fs.Duration("memcached-timeout", time.Second, "Maximum time to wait before giving up on memcached requests")
		blogCacheExpiry   = fs.Duration("blog-cache-expiry", 5*time.Minute, "How long a cached blog listing stays fresh")
	)
	fs.Parse(os.Args[1:])

	if *mongoURL == "" {
		*mongoURL = os.Getenv("MONGODB_URI")
	}
	if *adminPassword == "" {
		*adminPassword = os.Getenv("ADMIN_PASS")
	}

	// Logger domain.
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}
	logger.Log("version", version)

	// Store component.
	var documentStore store.Store
	var storeCloser interface {
		Close(context.Context) error
	}
	{
		logger := log.With(logger, "component", "store")
		if *mongoURL == "" {
			logger.Log("err", "no MongoDB URI supplied; use --mongo-url or $MONGODB_URI")
			os.Exit(1)
		}
		mongoStore, err := mongostore.NewStore(context.Background(), mongostore.Config{
			URL:     *mongoURL,
			Timeout: *mongoTimeout,
			Logger:  logger,
		})
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		logger.Log("connected", true)
		documentStore = store.InstrumentStore(mongoStore)
		storeCloser = mongoStore
	}

	// Blogs component.
	var blogReader blogs.Reader
	{
		logger := log.With(logger, "component", "blogs")
		blogReader = blogs.NewClient(blogs.Config{
			Endpoint:    *hashnodeEndpoint,
			Publication: *hashnodeHost,
			Client:      &http.Client{Timeout: *hashnodeTimeout},
			Logger:      logger,
		})
		if *memcachedHostname != "" {
			logger.Log("cache", *memcachedHostname, "expiry", *blogCacheExpiry)
			blogReader = blogs.NewCached(blogReader, blogs.CacheConfig{
				Addresses: []string{*memcachedHostname},
				Timeout:   *memcachedTimeout,
				Expiry:    *blogCacheExpiry,
				Logger:    logger,
			})
		} else {
			logger.Log("cache", "none")
		}
	}

	// Daemon (business logic) domain.
	d := &daemon.Daemon{
		V:      version,
		Store:  documentStore,
		Blogs:  blogReader,
		Logger: log.With(logger, "component", "daemon"),
	}

	if *adminPassword == "" {
		logger.Log("warning", "no admin password configured; document writes are disabled")
	}

	// Mechanical stuff.
	errc := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	// Transport domain.
	go func() {
		logger := log.With(logger, "transport", "HTTP")
		logger.Log("addr", *listenAddr)

		router := daemonhttp.NewRouter()
		handler := daemonhttp.NewHandler(d, auth.NewPolicy(*adminPassword), router)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/", handler)
		errc <- http.ListenAndServe(*listenAddr, mux)
	}()

	// Go!
	logger.Log("exit", <-errc)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := storeCloser.Close(ctx); err != nil {
		logger.Log("err", err)
	}
}
