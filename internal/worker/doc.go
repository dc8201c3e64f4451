// Package worker implements the render worker lifecycle and Redis Streams integration.
//
// The worker reads render requests from a Redis stream through a consumer
// group, renders each template against its context and publishes the
// output to a result stream. Failed renders go to the result stream name
// suffixed with ".errors".
//
// A request message carries a single "data" field holding JSON:
//
//	{"request_id": "r-1", "template": "Hi {{name}}", "context": {"name": "Ada"}}
//
// and the result is published the same way:
//
//	{"request_id": "r-1", "output": "Hi Ada", "rendered_at": "2024-03-05T10:00:00Z"}
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(cfg.RedisOptions())
//	engine := template.NewEngine(helpers.Default(helpers.Options{Logger: logger}), 0, logger)
//
//	worker := worker.NewWorker(cfg, redisClient, engine, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// Health checks and Prometheus metrics are served by a separate HTTP server.
// /health runs every check; /ready only the redis and consumer checks:
//
//	healthServer := worker.NewHealthServer(8083, cfg.WorkerID, logger,
//	    worker.RedisCheck(redisClient),
//	    worker.ConsumerCheck(worker),
//	    worker.RendererCheck(engine),
//	)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
