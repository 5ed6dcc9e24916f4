package main

import (
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/eleveia/eleve-go/cache"
	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/core/contato"
	"github.com/eleveia/eleve-go/core/escola"
	"github.com/eleveia/eleve-go/core/evento"
	"github.com/eleveia/eleve-go/core/faq"
	"github.com/eleveia/eleve-go/core/gateway"
	"github.com/eleveia/eleve-go/core/lead"
	"github.com/eleveia/eleve-go/core/nav"
	"github.com/eleveia/eleve-go/core/session"
	"github.com/eleveia/eleve-go/restclient"
	"github.com/eleveia/eleve-go/services/logger"
	"github.com/eleveia/eleve-go/storage/credstore"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ELEVE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logSvc core.Logger
	if conf.RollbarToken != "" && !conf.Debug {
		logSvc = logsvc.NewRollbarLogger(std, conf)
	} else {
		logSvc = logsvc.NewStdLogger(std)
	}

	var store credstore.Store
	if conf.RedisURL != "" {
		redisOpts, err := redis.ParseURL(conf.RedisURL)
		if err != nil {
			std.Fatal(err)
		}
		store = credstore.NewRedisStore(redis.NewClient(redisOpts), conf.AppName)
	} else {
		store = credstore.OpenFile(conf.CredentialsPath)
	}

	reg := prometheus.NewRegistry()
	apiClient := restclient.New(restclient.Options{
		BaseURL: conf.APIBaseURL,
		Timeout: conf.RequestTimeout,
		Tokens:  credstore.Tokens(store),
		Logger:  logSvc,
		Metrics: restclient.NewMetrics(reg),
	})
	memCache := cache.New(cache.Options{
		Logger:  logSvc,
		Metrics: cache.NewMetrics(reg),
	})
	validate := core.NewValidator()

	escolaSvc := escola.NewService(apiClient, memCache, validate, logSvc)
	gatewayClient := restclient.New(restclient.Options{
		BaseURL: conf.GatewayBaseURL,
		Timeout: conf.RequestTimeout,
		Tokens:  escolaSvc.MessagingTokens(),
		Logger:  logSvc,
	})

	cli := commandLine{
		out:      os.Stdout,
		session:  session.NewService(apiClient, store, validate, logSvc),
		escolas:  escolaSvc,
		faqs:     faq.NewService(apiClient, memCache, validate, logSvc),
		eventos:  evento.NewService(apiClient, memCache, validate, logSvc),
		contatos: contato.NewService(apiClient, memCache, validate, logSvc),
		leads:    lead.NewService(apiClient, memCache, validate, logSvc),
		gateway: gateway.NewService(gateway.Options{
			Client:    gatewayClient,
			PollDelta: conf.GatewayPollDelta,
			Logger:    logSvc,
		}),
		nav:     nav.NewState(),
		flashes: core.NewFlashes(conf.FlashDismissDelta),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
