package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"cityverse/db"
	httpadapter "cityverse/internal/adapter/http"
	sqlitejournal "cityverse/internal/adapter/journal/sqlite"
	metricsinmem "cityverse/internal/adapter/metrics/inmemory"
	gormrepo "cityverse/internal/adapter/repo/gorm"
	"cityverse/internal/adapter/repo/memory"
	"cityverse/internal/adapter/tuning"
	"cityverse/internal/adapter/ws"
	"cityverse/internal/app/frame"
	"cityverse/internal/app/history"
	missionapp "cityverse/internal/app/mission"
	"cityverse/internal/app/ports"
	"cityverse/internal/app/session"
	"cityverse/internal/domain/mission"
	"cityverse/internal/domain/movement"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func main() {
	tun := mustLoadTuning()
	repos := mustBuildRepos(tun)
	hub := ws.NewHub()
	kpiRecorder := metricsinmem.NewRecorder()
	tun.Clock.StartAt = clockAnchor(repos.clock)

	registry := session.NewRegistry(session.Config{
		Engine:       mission.NewEngine(tun.Levels),
		RecentWindow: tun.RecentTargets,
	})

	h := httpadapter.Handler{
		SessionUC: session.UseCase{Registry: registry, Progress: repos.progress},
		FrameUC: frame.UseCase{
			Sessions:   registry,
			Controller: movement.NewController(tun.Street(), tun.Physics),
			Publisher:  hub,
			Now:        time.Now,
		},
		MissionUC: missionapp.UseCase{
			Sessions:  registry,
			Shops:     repos.shops,
			Progress:  repos.progress,
			Outcomes:  repos.outcomes,
			TxManager: repos.tx,
			Metrics:   kpiRecorder,
			Publisher: hub,
			Clock:     tun.WorldClock(),
			MinShops:  intEnv("CITYVERSE_MIN_SHOPS", tun.MinShops),
			Now:       time.Now,
		},
		HistoryUC: history.UseCase{Outcomes: repos.outcomes},
		KPI:       kpiRecorder,
	}

	eventsAddr := stringEnv("CITYVERSE_EVENTS_ADDR", ":8081")
	mux := http.NewServeMux()
	mux.HandleFunc("/events", hub.Handler())
	events := &http.Server{Addr: eventsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := events.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hlog.Errorf("events server: %v", err)
		}
	}()

	addr := stringEnv("CITYVERSE_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(ctx context.Context) {
		_ = events.Shutdown(ctx)
		if err := repos.close(); err != nil {
			hlog.Warnf("close repos: %v", err)
		}
	})

	hlog.Infof("cityverse server listening on %s (events on %s, store: %s, shops: %d)", addr, eventsAddr, repos.backend, len(tun.DemoShops))
	s.Spin()
}

type repoSet struct {
	backend  string
	shops    ports.ShopRepository
	progress ports.ProgressionRepository
	outcomes ports.OutcomeRepository
	tx       ports.TxManager
	clock    ports.WorldClockRepository
	close    func() error
}

func mustLoadTuning() tuning.Tuning {
	path := stringEnv("CITYVERSE_TUNING", "./configs/tuning.yaml")
	tun, err := tuning.Load(path)
	if err != nil {
		hlog.Fatalf("load tuning %s: %v", path, err)
	}
	return tun
}

// mustBuildRepos uses Postgres when CITYVERSE_DB_DSN is set. Otherwise shops
// live in memory and progression and outcomes go to a local sqlite journal.
func mustBuildRepos(tun tuning.Tuning) repoSet {
	ctx := context.Background()
	if dsn := strings.TrimSpace(os.Getenv("CITYVERSE_DB_DSN")); dsn != "" {
		gdb, err := gormrepo.OpenPostgres(dsn)
		if err != nil {
			hlog.Fatalf("open postgres: %v", err)
		}
		fsys, dir := migrationSource()
		applied, err := gormrepo.ApplyMigrations(ctx, gdb, fsys, dir)
		if err != nil {
			hlog.Fatalf("apply migrations: %v", err)
		}
		if len(applied) > 0 {
			hlog.Infof("applied migrations: %s", strings.Join(applied, ", "))
		}
		shops := gormrepo.NewShopRepo(gdb)
		if n, err := shops.SeedShops(ctx, tun.Shops()); err != nil {
			hlog.Fatalf("seed shops: %v", err)
		} else if n > 0 {
			hlog.Infof("seeded %d demo shops", n)
		}
		return repoSet{
			backend:  "postgres",
			shops:    shops,
			progress: gormrepo.NewProgressionRepo(gdb),
			outcomes: gormrepo.NewOutcomeRepo(gdb),
			tx:       gormrepo.NewTxManager(gdb),
			clock:    gormrepo.NewWorldClockRepo(gdb),
			close: func() error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}
	}

	store := memory.NewStore()
	store.SeedShops(tun.Shops())
	path := stringEnv("CITYVERSE_SQLITE_PATH", "./data/cityverse.db")
	journal, err := sqlitejournal.Open(path)
	if err != nil {
		hlog.Fatalf("open journal %s: %v", path, err)
	}
	return repoSet{
		backend:  "sqlite:" + path,
		shops:    memory.NewShopRepo(store),
		progress: journal,
		outcomes: journal,
		tx:       journal,
		clock:    journal,
		close:    journal.Close,
	}
}

// clockAnchor pins the day/night cycle to the stored start time. The
// fallback for a fresh store is CITYVERSE_CLOCK_START_UNIX or now.
func clockAnchor(repo ports.WorldClockRepository) time.Time {
	fallback := time.Now().UTC()
	if unix := intEnv("CITYVERSE_CLOCK_START_UNIX", 0); unix > 0 {
		fallback = time.Unix(int64(unix), 0).UTC()
	}
	if repo == nil {
		return fallback
	}
	anchor, err := repo.Anchor(context.Background(), fallback)
	if err != nil {
		hlog.Warnf("load world clock anchor: %v (using %s)", err, fallback.Format(time.RFC3339))
		return fallback
	}
	return anchor
}

// migrationSource prefers an on-disk directory from CITYVERSE_MIGRATIONS
// over the embedded set.
func migrationSource() (fs.FS, string) {
	if dir := strings.TrimSpace(os.Getenv("CITYVERSE_MIGRATIONS")); dir != "" {
		return os.DirFS(dir), "."
	}
	return db.Migrations, "migrations"
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
