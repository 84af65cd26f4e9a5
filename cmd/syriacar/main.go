package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Moayad7/syriacar/internal/api"
	"github.com/Moayad7/syriacar/internal/auth"
	"github.com/Moayad7/syriacar/internal/authz"
	"github.com/Moayad7/syriacar/internal/config"
	"github.com/Moayad7/syriacar/internal/list"
	"github.com/Moayad7/syriacar/internal/models"
	logctx "github.com/Moayad7/syriacar/internal/pkg/log"
	"github.com/Moayad7/syriacar/internal/session/file"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting client", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	ctx := logctx.Into(rootCtx, log)

	app, err := buildApp(cfg, log)
	if err != nil {
		log.Error("init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	if err := app.run(ctx, flag.Args()); err != nil {
		log.Error("command_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

// app — собранный клиент: сессия, транспорт, auth, гард и контроллеры.
type app struct {
	cfg   *config.Config
	auth  *auth.Service
	guard *authz.Guard

	cars      *list.Controller[models.Car]
	users     *list.Controller[models.User]
	stores    *list.Controller[models.Store]
	workshops *list.Controller[models.Workshop]
}

// buildApp связывает компоненты. Клиент бэкенда и auth-сервис зависят
// друг от друга (токен и 401-хук против login-запросов), поэтому
// клиент получает отложенные замыкания на ещё не созданный сервис.
func buildApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	store, err := file.New(cfg.Session.Path)
	if err != nil {
		return nil, err
	}

	var svc *auth.Service

	client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout,
		api.WithTokenSource(func() string {
			if svc == nil {
				return ""
			}
			return svc.Token()
		}),
		api.WithUnauthorizedHook(func() {
			if svc != nil {
				svc.ForceLogout()
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	svc, err = auth.New(store, client, &logNavigator{log: log})
	if err != nil {
		return nil, err
	}

	size := cfg.List.PageSize()

	return &app{
		cfg:       cfg,
		auth:      svc,
		guard:     authz.NewGuard(authz.Routes()),
		cars:      list.NewController[models.Car](api.NewResource[models.Car](client, "/api/cars"), "cars", size),
		users:     list.NewController[models.User](api.NewResource[models.User](client, "/api/users"), "users", size),
		stores:    list.NewController[models.Store](api.NewResource[models.Store](client, "/api/stores"), "stores", size),
		workshops: list.NewController[models.Workshop](api.NewResource[models.Workshop](client, "/api/workshops"), "workshops", size),
	}, nil
}

// logNavigator — навигация headless-клиента: переходы только логируются.
type logNavigator struct {
	log *slog.Logger
}

func (n *logNavigator) NavigateTo(route string) {
	n.log.Info("navigate", slog.String("route", route))
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: syriacar [-config path] login|register|logout|whoami|cars|users|stores|workshops")
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		_ = fs.Parse(rest)

		if err := a.auth.Login(ctx, *email, *password); err != nil {
			return err
		}
		fmt.Println("logged in as", a.auth.Session().UserID)
		return nil

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		confirm := fs.String("confirm", "", "password confirmation")
		role := fs.String("role", string(models.RoleUser), "requested role")
		_ = fs.Parse(rest)

		return a.auth.Register(ctx, api.RegisterRequest{
			Name:                 *name,
			Email:                *email,
			Password:             *password,
			PasswordConfirmation: *confirm,
			Role:                 *role,
		})

	case "logout":
		a.auth.Logout()
		fmt.Println("logged out")
		return nil

	case "whoami":
		sess := a.auth.Session()
		if !sess.Authenticated() {
			fmt.Println("guest")
			return nil
		}
		fmt.Printf("user %s (role %s)\n", sess.UserID, sess.Role)
		return nil

	case "cars":
		return listCommand(ctx, a, rest, "/car-listings", a.cars, func(c models.Car) string {
			return fmt.Sprintf("%-8s %-12s %-12s %6d  %.0f", c.ItemID(), c.Brand, c.Model, c.Year, c.Price)
		})

	case "users":
		return listCommand(ctx, a, rest, "/admin/users", a.users, func(u models.User) string {
			return fmt.Sprintf("%-8s %-20s %-24s %s", u.ItemID(), u.Name, u.Email, u.Role)
		})

	case "stores":
		return listCommand(ctx, a, rest, "/stores", a.stores, func(s models.Store) string {
			return fmt.Sprintf("%-8s %-20s %s", s.ItemID(), s.Name, s.Address)
		})

	case "workshops":
		return listCommand(ctx, a, rest, "/workshops", a.workshops, func(w models.Workshop) string {
			return fmt.Sprintf("%-8s %-20s %s", w.ItemID(), w.Name, w.City)
		})
	}

	return fmt.Errorf("unknown command %q", cmd)
}

// listCommand — общий сценарий списочных глаголов: проверка доступа
// через гард, загрузка страницы, опциональное удаление с уходом
// с опустевшей непервой страницы (обязанность вызывающего, не
// контроллера).
func listCommand[T list.Item](ctx context.Context, a *app, args []string, route string, ctrl *list.Controller[T], line func(T) string) error {
	fs := flag.NewFlagSet(route, flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	search := fs.String("search", "", "search filter")
	del := fs.String("delete", "", "delete item by id")
	_ = fs.Parse(args)

	if d := a.guard.Check(route, a.auth.Session()); !d.Allowed() {
		return fmt.Errorf("access to %s denied: redirect to %s", route, d.RedirectTo)
	}

	if *search != "" {
		if err := ctrl.SetFilter(ctx, "search", *search); err != nil {
			return err
		}
	}

	// Первая загрузка — без клампа SetPage: до неё контроллер ещё не
	// знает реального числа страниц.
	if err := ctrl.Load(ctx, *page); err != nil {
		return err
	}

	if *del != "" {
		if err := ctrl.Remove(ctx, *del); err != nil {
			return err
		}

		st := ctrl.State()
		if len(st.Items) == 0 && st.Pagination.CurrentPage > 1 {
			if err := ctrl.SetPage(ctx, st.Pagination.CurrentPage-1); err != nil {
				return err
			}
		}
	}

	st := ctrl.State()
	for _, item := range st.Items {
		fmt.Println(line(item))
	}
	fmt.Printf("page %d/%d, %d total\n",
		st.Pagination.CurrentPage, st.Pagination.TotalPages, st.Pagination.TotalItems)

	return nil
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
