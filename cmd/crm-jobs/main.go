package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"crm/internal/config"
	"crm/internal/gqlclient"
	"crm/internal/graph"
	"crm/internal/jobs"
	"crm/internal/repos"
	"crm/internal/services"
)

const jobTimeout = 2 * time.Minute

func main() {
	runName := flag.String("run", "", "run one job now and exit (heartbeat, low_stock, order_reminders, weekly_report)")
	local := flag.Bool("local", false, "execute against the database in-process instead of GRAPHQL_URL")
	flag.Parse()

	cfg := config.Load()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	newAPI := func(retries int) jobs.Executor { return gqlclient.New(cfg.GraphQLURL, retries) }
	if *local {
		stores, closer, err := repos.OpenStores(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			log.Fatal(err)
		}
		defer closer.Close()
		schema, err := graph.NewSchema(services.New(stores))
		if err != nil {
			log.Fatal(err)
		}
		exec := &gqlclient.Local{Schema: schema}
		newAPI = func(int) jobs.Executor { return exec }
	}

	now := func() time.Time { return time.Now().UTC() }
	runner, err := jobs.NewRunner(jobs.Build(cfg, newAPI, now), jobTimeout)
	if err != nil {
		log.Fatal(err)
	}

	if *runName != "" {
		os.Exit(runOnce(runner, *runName))
	}

	scheduled := runner.Scheduled()
	names := make([]string, 0, len(scheduled))
	for name := range scheduled {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Printf("[jobs] %s %q", name, scheduled[name])
	}

	runner.Start()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Printf("[jobs] stopping")
	runner.Stop()
}

func runOnce(runner *jobs.Runner, name string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.RunOnce(ctx, name); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", name, err)
		return 1
	}
	if name == "order_reminders" {
		fmt.Println(jobs.RemindersDone)
	}
	return 0
}
