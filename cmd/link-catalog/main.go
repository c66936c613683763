package main

import (
	"context"
	"flag"
	"os"

	"link-catalog/internal/biz"
	"link-catalog/internal/conf"
	"link-catalog/internal/domain"
	"link-catalog/internal/infra/eventbus"
	"link-catalog/internal/server"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/grpc"
	"github.com/go-kratos/kratos/v2/transport/http"

	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "link-catalog"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config flag.
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs", "config path, eg: -conf config.yaml")
}

func newApp(
	logger log.Logger,
	gs *grpc.Server,
	hs *http.Server,
	scheduler *server.SweepScheduler,
	eventBus *eventbus.EventBus,
	router *eventbus.Router,
	hits domain.HitCounterRepository,
) *kratos.App {
	helper := log.NewHelper(logger)
	biz.RegisterEventHandlers(router, hits, logger)

	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(
			gs,
			hs,
			scheduler,
		),
		kratos.BeforeStart(func(ctx context.Context) error {
			go func() {
				if err := router.Run(ctx); err != nil {
					helper.Errorf("event router error: %v", err)
				}
			}()
			// handlers must be subscribed before the first request publishes
			select {
			case <-router.Running():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}),
		kratos.BeforeStop(func(ctx context.Context) error {
			if err := router.Close(); err != nil {
				helper.Errorf("failed to close router: %v", err)
			}
			if err := eventBus.Close(); err != nil {
				helper.Errorf("failed to close event bus: %v", err)
			}
			return nil
		}),
	)
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	app, cleanup, err := wireApp(bc.Server, bc.Data, bc.Auth, bc.Sweep, bc.Selection, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// start and wait for stop signal
	if err := app.Run(); err != nil {
		panic(err)
	}
}
