// Command cachestore reads and writes entries in a memcached or redis
// server using the cachestore envelope format.
//
//	cachestore [-config path] get KEY
//	cachestore [-config path] set [-ttl 10m] [-sliding] KEY VALUE
//	cachestore [-config path] rm KEY
//	cachestore [-config path] flush
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/unkn0wn-root/cachestore"
	"github.com/unkn0wn-root/cachestore/internal/config"
	zl "github.com/unkn0wn-root/cachestore/log/zerolog"
	pr "github.com/unkn0wn-root/cachestore/provider"
	"github.com/unkn0wn-root/cachestore/provider/memcache"
	"github.com/unkn0wn-root/cachestore/provider/redis"
)

var errUsage = errors.New("usage: cachestore [-config path] get|set|rm|flush ...")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cachestore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to a config file (default ./cachestore.yaml)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel, stderr)

	t, err := newTransport(cfg)
	if err != nil {
		return err
	}
	if !cachestore.IsAvailable(t) {
		return fmt.Errorf("%s transport unavailable", cfg.Backend)
	}
	sc := cfg.Store()
	store, err := cachestore.New(cachestore.Options{
		Transport: t,
		Prefix:    sc.Prefix,
		Logger:    zl.New(logger),
		Addr:      sc.Addr(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn().Err(err).Msg("close")
		}
	}()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "get":
		if len(rest) != 1 {
			return errUsage
		}
		v, ok, err := store.Read(ctx, rest[0])
		if err != nil {
			return err
		}
		if !ok {
			logger.Info().Str("key", rest[0]).Msg("miss")
			return nil
		}
		_, err = stdout.Write(append(v, '\n'))
		return err

	case "set":
		sf := flag.NewFlagSet("set", flag.ContinueOnError)
		sf.SetOutput(stderr)
		ttl := sf.Duration("ttl", 0, "expiration; 0 stores without one")
		sliding := sf.Bool("sliding", false, "renew the expiration on every read")
		if err := sf.Parse(rest); err != nil || sf.NArg() != 2 {
			return errUsage
		}
		deps := cachestore.Dependencies{Expire: *ttl, Sliding: *sliding}
		if err := store.Write(ctx, sf.Arg(0), []byte(sf.Arg(1)), deps); err != nil {
			return err
		}
		logger.Debug().Str("key", sf.Arg(0)).Dur("ttl", *ttl).Bool("sliding", *sliding).Msg("stored")
		return nil

	case "rm":
		if len(rest) != 1 {
			return errUsage
		}
		return store.Remove(ctx, rest[0])

	case "flush":
		if len(rest) != 0 {
			return errUsage
		}
		return store.Clean(ctx, cachestore.Conditions{All: true})
	}
	return fmt.Errorf("%w (unknown command %q)", errUsage, cmd)
}

func newLogger(level string, w io.Writer) zerolog.Logger {
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		l.Warn().Str("invalid_level", level).Msg("invalid log level, using info")
		lvl = zerolog.InfoLevel
	}
	return l.Level(lvl)
}

func newTransport(cfg *config.Config) (pr.Transport, error) {
	addr := cfg.Store().Addr()
	switch cfg.Backend {
	case config.BackendRedis:
		return redis.NewFromAddr(addr, cfg.Redis.Password, cfg.Redis.DB), nil
	case config.BackendMemcache:
		return memcache.New(memcache.Config{
			Servers: []string{addr},
			Timeout: cfg.Timeout,
		}), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
