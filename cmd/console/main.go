package main

import (
	"context"
	"database/sql"

	config "github.com/docgo/processos-console/internal/config"
	"github.com/docgo/processos-console/internal/processo/application"
	processoDomain "github.com/docgo/processos-console/internal/processo/domain"
	processoHttp "github.com/docgo/processos-console/internal/processo/infra/inbound/http"
	processoApi "github.com/docgo/processos-console/internal/processo/infra/outbound/api"
	kvCache "github.com/docgo/processos-console/internal/processo/infra/outbound/cache"
	kvSqlite "github.com/docgo/processos-console/internal/processo/infra/outbound/db/sqlite"
	"github.com/docgo/processos-console/internal/processo/infra/outbound/notify"
	"github.com/docgo/processos-console/internal/processo/infra/outbound/session"
	sharedEvents "github.com/docgo/processos-console/internal/shared/infra/events"
	sharedBus "github.com/docgo/processos-console/internal/shared/infra/platform/bus"
	"github.com/docgo/processos-console/internal/shared/infra/relayer"

	"github.com/docgo/processos-console/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	// _ "github.com/mattn/go-sqlite3" // requires gcc
	_ "modernc.org/sqlite"
)

// ---------------- Main ----------------
func main() {
	logger.Init()          // inicializa o zap
	log := logger.Logger() // logger estruturado
	defer log.Sync()       // flush dos buffers na saída

	ctx := context.Background()
	cfg := config.LoadConfig()

	// ---------------- Armazém chave-valor ----------------
	// Cadeia de fallback: Redis -> SQLite -> memória. O console sempre sobe.
	var kv processoDomain.KeyValueStore

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err == nil {
		kv = kvCache.NewRedisStore(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, armazém habilitado")
	} else {
		log.Warn("⚠️ Redis indisponível, tentando SQLite:", zap.Error(err))

		db, errDB := sql.Open("sqlite", cfg.SQLitePath)
		if errDB == nil {
			errDB = kvSqlite.InitSQLite(db)
		}
		if errDB == nil {
			errDB = db.PingContext(ctx)
		}
		if errDB == nil {
			defer db.Close()
			kv = kvSqlite.NewKVRepoSQLite(db)
			log.Info("✅ SQLite pronto, armazém persistente habilitado")
		} else {
			log.Warn("⚠️ SQLite indisponível, armazém em memória:", zap.Error(errDB))
			mem := kvCache.NewInMemoryStore(cfg.CacheTTL, 3*cfg.CacheTTL)
			defer mem.Stop()
			kv = mem
		}
	}

	// ---------------- Sessão e API remota ----------------
	sessionStore := session.NewKVSessionStore(kv)

	apiClient, err := processoApi.NewClient(cfg.APIBaseURL, sessionStore, cfg.APITimeout, log)
	if err != nil {
		log.Fatal("failed to build API client", zap.Error(err))
	}

	// ---------------- Eventos ----------------
	var eventBus sharedBus.EventBus
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos")

		writer := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer writer.Close()

		publisher := sharedEvents.NewKafkaPublisher(writer, log)
		relay := relayer.NewEventRelay(publisher, cfg.RelayBuffer, cfg.RelayRetries, cfg.RelayInterval, log)
		go relay.Start(ctx)
		eventBus = relay
	} else {
		log.Info("⚡️ Usando bus de eventos em memória (canais de Go)")
		eventBus = sharedEvents.NewInMemoryEventBus(cfg.KafkaTopic)
	}

	// ---------------- Casos de uso ----------------
	notifier := notify.NewLogNotifier(log)
	watcher := processoHttp.NewSessionWatcher()

	controller := application.NewQueryController(apiClient, kv, sessionStore, notifier, watcher, cfg.DebounceBusca, log)
	defer controller.Close()

	workflow := application.NewTramitacaoWorkflow(apiClient, eventBus, controller, notifier, log)
	stats := application.NewStatsAggregator(apiClient, log)

	controller.Iniciar(ctx)

	// ---------------- HTTP ----------------
	handler := processoHttp.NewProcessoHandler(controller, workflow, stats, sessionStore, watcher, log)
	router := gin.Default()
	processoHttp.RegisterProcessoRoutes(router, handler, watcher)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
