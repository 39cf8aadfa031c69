//go:build functional

package test_functional

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/client"
)

type (
	Config struct {
		Host       string `mapstructure:"HOST"`
		Port       string `mapstructure:"PORT"`
		DBHost     string `mapstructure:"DB_HOST"`
		DBPort     string `mapstructure:"DB_PORT"`
		DBUser     string `mapstructure:"DB_USER"`
		DBPassword string `mapstructure:"DB_PASSWORD"`
		DBName     string `mapstructure:"DB_NAME"`
	}
)

var (
	AppBaseURL url.URL
	DBConn     *pgxpool.Pool
	API        *client.Client
)

func TestMain(m *testing.M) {
	v := viper.New()
	v.SetEnvPrefix("TEST_RUNNER")

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "1323")
	v.SetDefault("DB_HOST", "0.0.0.0")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "db")

	envs := []string{"HOST", "PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"}
	for _, key := range envs {
		if err := v.BindEnv(key); err != nil {
			panic(err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	fmt.Println(cfg)

	////////

	AppBaseURL = url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
	}
	API = client.New(AppBaseURL.String())

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	for {
		if pingCtx.Err() != nil {
			panic(pingCtx.Err())
		}
		if err := API.Ping(pingCtx); err == nil {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	cancel()

	fmt.Println("pinged successfully")

	///////

	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, net.JoinHostPort(cfg.DBHost, cfg.DBPort), cfg.DBName)

	var err error
	DBConn, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	DBConn.Close()
	os.Exit(code)
}

func FlushDB() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	if _, err := DBConn.Exec(ctx, "TRUNCATE users, bookmarks RESTART IDENTITY CASCADE"); err != nil {
		panic(err)
	}
}
