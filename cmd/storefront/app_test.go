package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_cart/storefront/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// runWithApp runs args through the storefront CLI with a command that builds
// the app and hands it to check.
func runWithApp(t *testing.T, args []string, check func(*app)) error {
	t.Helper()
	cliApp := newCLI()
	cliApp.Commands = append(cliApp.Commands, &cli.Command{
		Name: "inspect",
		Action: func(c *cli.Context) error {
			a, err := newApp(c.Context, c)
			if err != nil {
				return err
			}
			defer a.Close()
			check(a)
			return nil
		},
	})
	return cliApp.RunContext(context.Background(), append([]string{"storefront"}, args...))
}

func TestNewApp_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("STOREFRONT_BASE_URL", "http://env.example:9090")
	t.Setenv("STOREFRONT_LOG_LEVEL", "warn")
	t.Setenv("STOREFRONT_CUSTOMER_EMAIL", "bob@example.com")

	var called bool
	err := runWithApp(t, []string{"--base-url", "http://flag.example:9090", "--log-level", "debug", "inspect"}, func(a *app) {
		called = true
		assert.Equal(t, "http://flag.example:9090", a.cfg.BaseURL)
		assert.Equal(t, "debug", a.cfg.LogLevel)
		assert.IsType(t, events.Nop{}, a.publisher)
		assert.Empty(t, a.closers)

		sess := a.NewSession("s-1")
		defer sess.Close()
		assert.Equal(t, "s-1", sess.ID())
		assert.Equal(t, "bob@example.com", sess.Customer().Email)
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestNewApp_InvalidLogLevel(t *testing.T) {
	err := runWithApp(t, []string{"--log-level", "loud", "inspect"}, func(*app) {
		t.Fatal("app built with an invalid log level")
	})

	assert.Error(t, err)
}

func TestNewApp_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("STOREFRONT_REDIS_ADDR", mr.Addr())

	err := runWithApp(t, []string{"inspect"}, func(a *app) {
		assert.Len(t, a.closers, 1)
	})

	require.NoError(t, err)
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	t.Setenv("STOREFRONT_REDIS_ADDR", addr)

	err := runWithApp(t, []string{"inspect"}, func(*app) {
		t.Fatal("app built without redis")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis connection failed")
}

func TestEventsCommand_RequiresBrokers(t *testing.T) {
	err := newCLI().RunContext(context.Background(), []string{"storefront", "events"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no kafka brokers configured")
}
