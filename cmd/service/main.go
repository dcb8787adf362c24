package main

import (
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vocdoni/payments-backend/api"
	"github.com/vocdoni/payments-backend/stripe"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 3000, "listen port")
	flag.String("stripeApiSecret", "", "Stripe API secret key")
	flag.String("stripeWebhookSecret", "", "Stripe webhook shared secret")
	flag.StringSlice("corsOrigins",
		[]string{"http://localhost:5173", "http://localhost:3000"},
		"allowed CORS origins")
	flag.String("environment", "development", "runtime environment label")
	flag.String("logLevel", "info", "log level (debug, info, warn, error)")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("PAYMENTS")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	host := viper.GetString("host")
	port := viper.GetInt("port")
	environment := viper.GetString("environment")
	corsOrigins := viper.GetStringSlice("corsOrigins")
	logLevel := viper.GetString("logLevel")
	log.Init(logLevel, "stdout", nil)

	stripeConfig := &stripe.Config{
		APIKey:        viper.GetString("stripeApiSecret"),
		WebhookSecret: viper.GetString("stripeWebhookSecret"),
	}
	// the server starts without processor credentials, but the payment
	// routes answer with an error until they are provided
	var stripeService *stripe.Service
	if err := stripeConfig.Validate(); err != nil {
		log.Warnw("starting without payment processor", "error", err.Error())
	} else {
		var err error
		stripeService, err = stripe.NewService(stripeConfig, stripe.NewClient(stripeConfig))
		if err != nil {
			log.Fatalf("could not create the stripe service: %v", err)
		}
	}
	// create the local API server
	api.New(&api.Config{
		Host:             host,
		Port:             port,
		Environment:      environment,
		AllowedOrigins:   corsOrigins,
		Stripe:           stripeService,
		StripeConfigured: stripeService != nil,
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port, "environment", environment)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	if stripeService != nil {
		stripeService.Close()
	}
}
