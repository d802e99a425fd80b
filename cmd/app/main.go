package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"post-service/configs"
	"post-service/internal/community"
	"post-service/internal/counter"
	"post-service/internal/kafka"
	"post-service/internal/migrate"
	"post-service/internal/notify"
	"post-service/internal/post"
	"post-service/internal/shared/db"
	"post-service/internal/shared/httpx"
	"post-service/internal/tag"
	redisx "post-service/pkg/redis"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("post-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()
	store := db.Open(cfg)

	if cfg.AutoMigrate {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	jobs, err := kafka.NewWriter(cfg.KafkaBrokerURL, cfg.KafkaJobTopic)
	if err != nil {
		log.Fatalf("kafka writer: %v", err)
	}
	defer jobs.Close()

	rdb := redisx.Open(cfg.RedisAddr())
	dispatcher := notify.NewDispatcher(notify.NewRedisPublisher(rdb))

	tagSvc := tag.NewService(tag.NewRepository())
	communityRepo := community.NewRepository(store)
	reconciler := counter.NewReconciler(store)

	postRepo := post.NewRepository(store)
	postSvc := post.NewService(
		postRepo, tagSvc, post.NewChildApplier(),
		reconciler, dispatcher, jobs, communityRepo,
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	ph := post.NewHandler(postSvc)
	mux.Handle("GET /posts/{post_id}", httpx.Wrap(ph.GetByID))
	mux.Handle("GET /communities/{community_id}/posts", httpx.Wrap(ph.ListByCommunity))
	mux.Handle("POST /posts", httpx.AuthMiddleware(httpx.Wrap(ph.Create)))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("post-service listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
