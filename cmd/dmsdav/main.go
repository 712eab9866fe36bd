package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/fbrnila/go-dms-dav/auth"
	"github.com/fbrnila/go-dms-dav/boltrepo"
	"github.com/fbrnila/go-dms-dav/config"
	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/logger"
	"github.com/fbrnila/go-dms-dav/memrepo"
	"github.com/fbrnila/go-dms-dav/notifier"
	"github.com/fbrnila/go-dms-dav/pages"
	"github.com/fbrnila/go-dms-dav/pathinfo"
	"github.com/fbrnila/go-dms-dav/server"
	"github.com/fbrnila/go-dms-dav/uc"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln("configuration:", err)
	}

	lg := logger.New(os.Stdout, cfg.Debug)

	if err := os.MkdirAll(cfg.ContentDir, 0o755); err != nil {
		log.Fatalln("content dir:", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.BoltPath), 0o755); err != nil {
		log.Fatalln("database dir:", err)
	}

	store, err := boltrepo.Open(cfg.BoltPath, cfg.ContentDir)
	if err != nil {
		log.Fatalln("open database:", err)
	}
	defer store.Close()

	creds := bootstrapUsers(store.Repo, lg)

	namer := pathinfo.NewNamer(cfg.Naming, store)
	informer := pathinfo.New(store, namer)
	interactor := uc.NewInteractor(cfg, store, informer, namer, notifier.New(os.Stdout), pages.New(), lg)

	srv := server.New(interactor, store, auth.New(store, creds), store, auth.NewSessions(cfg.CookieAge), lg)

	lg.Info("listening on", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, srv); err != nil {
		log.Fatalln(err)
	}
}

// bootstrapUsers builds the credential table from DMSDAV_USERS
// ("login:password[:admin]", comma separated) and makes sure each
// login has a repository account. Without the variable a default
// admin/admin account is created for first contact.
func bootstrapUsers(repo *memrepo.Repo, lg uc.Debug) map[string]string {
	raw := os.Getenv("DMSDAV_USERS")
	if raw == "" {
		raw = "admin:admin:admin"
		lg.Info("DMSDAV_USERS not set, using the default admin account")
	}

	creds := map[string]string{}
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) < 2 {
			lg.Err("skipping malformed user entry:", entry)
			continue
		}
		login, pass := parts[0], parts[1]
		creds[login] = auth.HashPassword(pass)
		if _, err := repo.UserByLogin(login); err != nil {
			repo.AddUser(&domain.User{
				Login:    login,
				FullName: login,
				Admin:    len(parts) > 2 && parts[2] == "admin",
			})
		}
	}
	return creds
}
