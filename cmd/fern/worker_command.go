package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/processor"
	"github.com/Ramsey-B/fern/pkg/routes"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	"github.com/Ramsey-B/fern/pkg/startup"
	"github.com/spf13/cobra"
)

func newWorkerCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Parse raw documents consumed from Kafka",
		Long: "Consume raw documents from the input topic, parse them and publish the\n" +
			"records to the output topic. Failures go to the error topic.\n" +
			"Health checks and metrics are served on the configured port.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup(cmd.Context())
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			checker := health.NewChecker(version)
			s := startup.New(logger, cfg.StartupMaxAttempts)

			var producer *kafka.Producer
			s.AddDependency(&startup.Func{
				Name: "producer",
				StartFunc: func(context.Context) error {
					producerConfig := kafka.DefaultProducerConfig()
					producerConfig.Brokers = cfg.KafkaBrokers
					producerConfig.Topic = cfg.KafkaOutputTopic
					producerConfig.BatchSize = cfg.KafkaBatchSize
					producerConfig.BatchTimeout = time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond
					producerConfig.RequiredAcks = cfg.KafkaRequiredAcks
					producerConfig.Compression = cfg.KafkaCompression

					var err error
					producer, err = kafka.NewProducer(producerConfig, logger)
					return err
				},
				StopFunc: func(context.Context) error {
					return producer.Close()
				},
			})

			var consumer *kafka.Consumer
			s.AddDependency(&startup.Func{
				Name:     "consumer",
				Requires: []string{"producer"},
				StartFunc: func(c context.Context) error {
					consumerConfig := kafka.DefaultConsumerConfig()
					consumerConfig.Brokers = cfg.KafkaBrokers
					consumerConfig.Topic = cfg.KafkaInputTopic
					consumerConfig.GroupID = cfg.KafkaConsumerGroup

					var err error
					consumer, err = kafka.NewConsumer(consumerConfig, logger)
					if err != nil {
						return err
					}

					// documents arrive decoded, nothing is fetched
					svc, err := ctx.offline(c)
					if err != nil {
						return err
					}
					proc := processor.NewProcessor(processor.ProcessorConfig{
						WorkerCount:    cfg.ProcessorWorkerCount,
						ProcessTimeout: time.Duration(cfg.ProcessorTimeoutSeconds) * time.Second,
						ErrorTopic:     cfg.KafkaErrorTopic,
					}, svc, producer, logger)

					return consumer.Start(runCtx, proc.MessageHandler())
				},
				StopFunc: func(context.Context) error {
					return consumer.Stop()
				},
			})

			server := newHTTPServer(cfg, routes.NewOperational(routes.Options{
				AppName: cfg.AppName,
				Logger:  logger,
				Health:  checker,
			}))
			s.AddDependency(&startup.Func{
				Name: "http",
				StartFunc: func(context.Context) error {
					go listen(server, logger, stop)
					return nil
				},
				StopFunc: func(c context.Context) error {
					return server.Shutdown(c)
				},
			})

			return run(runCtx, s, checker, logger)
		},
	}
}
