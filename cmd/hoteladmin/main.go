package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"gopkg.in/yaml.v3"

	console "github.com/goliatone/go-hotel-admin/components/console"
	"github.com/goliatone/go-hotel-admin/components/console/commands"
	consolerouter "github.com/goliatone/go-hotel-admin/components/console/gorouter"
	"github.com/goliatone/go-hotel-admin/pkg/hotelapi"
)

type cli struct {
	Serve serveCmd `cmd:"" default:"1" help:"Run the admin console server."`
	Check checkCmd `cmd:"" help:"Verify configuration and backend reachability."`
}

// fileConfig is the optional YAML configuration. Flags override file values.
type fileConfig struct {
	Addr            string `yaml:"addr"`
	BaseURL         string `yaml:"base_url"`
	BasePath        string `yaml:"base_path"`
	Brand           string `yaml:"brand"`
	PageSize        int    `yaml:"page_size"`
	CredentialsFile string `yaml:"credentials_file"`
	Keyring         bool   `yaml:"keyring"`
}

type serveCmd struct {
	Config          string `type:"path" help:"Path to a YAML configuration file."`
	Addr            string `help:"Listen address." env:"HOTELADMIN_ADDR"`
	BaseURL         string `help:"Hotel backend base URL." env:"HOTELADMIN_BASE_URL"`
	BasePath        string `help:"Mount path for the console." env:"HOTELADMIN_BASE_PATH"`
	Brand           string `help:"Brand shown in the header."`
	PageSize        int    `help:"Rows per list page."`
	CredentialsFile string `type:"path" help:"Persist the session to this YAML file."`
	Keyring         bool   `help:"Persist the session in the OS keyring."`
}

type checkCmd struct {
	Config  string `type:"path" help:"Path to a YAML configuration file."`
	BaseURL string `help:"Hotel backend base URL." env:"HOTELADMIN_BASE_URL"`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Server-rendered admin console for the hotel booking backend."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{
		Addr:     ":8080",
		BaseURL:  "http://localhost:3000/api",
		BasePath: "/admin",
		Brand:    "Hotel Admin",
		PageSize: 10,
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("hoteladmin: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("hoteladmin: parse config: %w", err)
	}
	return cfg, nil
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	cfg, err := loadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Addr = cmd.Addr
	}
	if cmd.BaseURL != "" {
		cfg.BaseURL = cmd.BaseURL
	}
	if cmd.BasePath != "" {
		cfg.BasePath = cmd.BasePath
	}
	if cmd.Brand != "" {
		cfg.Brand = cmd.Brand
	}
	if cmd.PageSize > 0 {
		cfg.PageSize = cmd.PageSize
	}
	if cmd.CredentialsFile != "" {
		cfg.CredentialsFile = cmd.CredentialsFile
	}
	if cmd.Keyring {
		cfg.Keyring = true
	}

	var session *console.SessionStore
	client, err := hotelapi.New(hotelapi.Config{
		BaseURL: cfg.BaseURL,
		TokenSource: func() string {
			if session == nil {
				return ""
			}
			return session.Token()
		},
	})
	if err != nil {
		return err
	}

	session = console.NewSessionStore(console.SessionOptions{
		Auth:        client,
		Credentials: credentialStore(cfg),
	})
	if err := session.Bootstrap(ctx); err != nil {
		log.Printf("session bootstrap: %v", err)
	}

	flashes := console.NewFlashHub()

	users, err := console.NewUsersListing(console.UsersListingOptions{
		API:      client,
		Notifier: flashes,
		PageSize: cfg.PageSize,
	})
	if err != nil {
		return err
	}
	bookings, err := console.NewBookingsListing(console.BookingsListingOptions{
		API:      client,
		Notifier: flashes,
		PageSize: cfg.PageSize,
	})
	if err != nil {
		return err
	}

	dashboard := console.NewDashboardService(console.DashboardOptions{
		Users:    client,
		Bookings: client,
	})

	renderer, err := console.NewTemplateRenderer()
	if err != nil {
		return err
	}

	controller, err := console.NewController(console.ControllerOptions{
		Session:   session,
		Users:     users,
		Bookings:  bookings,
		Dashboard: dashboard,
		Chart:     console.NewStatusChart(),
		GuestDirectory: func(ctx context.Context) ([]hotelapi.User, error) {
			page, err := client.ListUsers(ctx, hotelapi.UserQuery{
				ListQuery: hotelapi.ListQuery{Page: 1, Limit: 100, Sort: "name", Order: "asc"},
			})
			if err != nil {
				return nil, err
			}
			return page.Items, nil
		},
		Renderer: renderer,
		Flashes:  flashes,
		Brand:    cfg.Brand,
		BasePath: cfg.BasePath,
	})
	if err != nil {
		return err
	}

	server := router.NewFiberAdapter()
	if err := consolerouter.Register(consolerouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		Session:    session,
		Users:      users,
		Bookings:   bookings,
		Commands: consolerouter.Commands{
			Login:         commands.NewLoginCommand(session, nil),
			Register:      commands.NewRegisterCommand(session, nil),
			Logout:        commands.NewLogoutCommand(session, nil),
			SaveUser:      commands.NewSaveUserCommand(users, nil),
			DeleteUser:    commands.NewDeleteUserCommand(users, nil),
			SaveBooking:   commands.NewSaveBookingCommand(bookings, nil),
			DeleteBooking: commands.NewDeleteBookingCommand(bookings, nil),
		},
		BasePath: cfg.BasePath,
	}); err != nil {
		return err
	}

	log.Printf("console ready: http://localhost%s%s/login (backend %s)", cfg.Addr, cfg.BasePath, cfg.BaseURL)
	return server.Serve(cfg.Addr)
}

func credentialStore(cfg fileConfig) console.CredentialStore {
	if cfg.Keyring {
		return console.NewKeyringCredentialStore("", "")
	}
	if cfg.CredentialsFile != "" {
		return console.NewFileCredentialStore(cfg.CredentialsFile)
	}
	return console.NewMemoryCredentialStore()
}

func (cmd *checkCmd) Run(ctx context.Context) error {
	cfg, err := loadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.BaseURL != "" {
		cfg.BaseURL = cmd.BaseURL
	}

	client, err := hotelapi.New(hotelapi.Config{BaseURL: cfg.BaseURL})
	if err != nil {
		return err
	}
	_, err = client.Me(ctx)
	if err == nil {
		fmt.Printf("backend %s reachable\n", cfg.BaseURL)
		return nil
	}
	if status := hotelapi.StatusOf(err); status != 0 {
		// Any HTTP status proves the backend answered.
		fmt.Printf("backend %s reachable (status %d without credentials)\n", cfg.BaseURL, status)
		return nil
	}
	return fmt.Errorf("hoteladmin: backend %s unreachable: %w", cfg.BaseURL, err)
}
