package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/jasonlvhit/gocron"
	"github.com/peterbourgon/ff"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/a-bouts/nav-translator/api"
	"github.com/a-bouts/nav-translator/translator"
	"github.com/a-bouts/nav-translator/xmpp"
)

// options are the process flags shared by every command; each can also be
// set through an environment variable of the same name in upper case.
type options struct {
	config     *string
	flightPlan *string
	debug      *bool
	logFile    *string
	cpuprofile *bool
	xmpp       xmpp.Config
}

func newFlagSet(name string) (*flag.FlagSet, *options) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	o := &options{
		config:     fs.String("config", "translator.ini", "translator configuration file"),
		flightPlan: fs.String("flight-plan", "", "flight plan to translate, defaults to Condor/FlightPlan"),
		debug:      fs.Bool("debug", false, "debug logging"),
		logFile:    fs.String("log-file", "", "also log to this rotated file"),
		cpuprofile: fs.Bool("cpuprofile", false, "write a CPU profile"),
	}
	fs.StringVar(&o.xmpp.Host, "xmpp-host", "", "")
	fs.StringVar(&o.xmpp.Jid, "xmpp-jid", "", "")
	fs.StringVar(&o.xmpp.Password, "xmpp-password", "", "")
	fs.StringVar(&o.xmpp.To, "xmpp-to", "", "")
	fs.String("flags", "", "plain file of flag values")
	return fs, o
}

func parse(fs *flag.FlagSet, args []string) error {
	return ff.Parse(fs, args,
		ff.WithEnvVarNoPrefix(),
		ff.WithConfigFileFlag("flags"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
}

// app is what every command builds from its options.
type app struct {
	runner   *translator.Runner
	notifier xmpp.Xmpp
	closer   func()
}

func (o *options) app() (*app, error) {
	logs := setupLogger(*o.debug, *o.logFile)

	cfg, err := translator.LoadConfig(*o.config)
	if err != nil {
		logs.Close()
		return nil, err
	}
	if *o.flightPlan != "" {
		cfg.FlightPlan = *o.flightPlan
	}
	log.WithFields(log.Fields{"config": *o.config, "targets": len(cfg.Targets)}).Debug("Configuration loaded")

	return &app{
		runner:   &translator.Runner{Config: cfg, Sink: translator.LocalSink{}, Log: log.StandardLogger()},
		notifier: xmpp.Xmpp{Config: o.xmpp},
		closer:   func() { logs.Close() },
	}, nil
}

// translate runs once and reports every target.
func (a *app) translate() ([]translator.Result, error) {
	flightPlan := a.runner.Config.FlightPlan
	results, err := a.runner.Translate(flightPlan)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		l := log.WithField("target", r.Target)
		if r.Failed() {
			l.Errorf("Failed: %s", r.Error)
			continue
		}
		l.Infof("Wrote %d files, %d warnings", len(r.Files), len(r.Warnings))
	}
	if err := a.notifier.Report(flightPlan, results); err != nil {
		log.Warnf("Notification failed: %v", err)
	}
	return results, nil
}

func command(use, short string, run func(args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(args)
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		},
	}
}

var translateCmd = command("translate", "Translate the current flight plan for every target", func(args []string) error {
	fs, o := newFlagSet("translate")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *o.cpuprofile {
		defer profile.Start().Stop()
	}

	a, err := o.app()
	if err != nil {
		return err
	}
	defer a.closer()

	results, err := a.translate()
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d targets failed", failed, len(results))
	}
	return nil
})

var watchCmd = command("watch", "Translate again whenever the flight plan changes", func(args []string) error {
	fs, o := newFlagSet("watch")
	interval := fs.Uint64("interval", 5, "seconds between flight plan checks")
	if err := parse(fs, args); err != nil {
		return err
	}

	a, err := o.app()
	if err != nil {
		return err
	}
	defer a.closer()

	w := &watcher{path: a.runner.Config.FlightPlan, translate: a.translate}
	w.check()

	s := gocron.NewScheduler()
	if err := s.Every(*interval).Seconds().Do(w.check); err != nil {
		return err
	}
	log.Infof("Watching %s every %ds", w.path, *interval)
	<-s.Start()
	return nil
})

var serveCmd = command("serve", "Translate on HTTP requests", func(args []string) error {
	fs, o := newFlagSet("serve")
	listen := fs.String("listen", ":8888", "HTTP listen address")
	if err := parse(fs, args); err != nil {
		return err
	}

	a, err := o.app()
	if err != nil {
		return err
	}
	defer a.closer()

	router := api.InitServer(*o.cpuprofile, a.runner, a.notifier)

	out := log.StandardLogger().Writer()
	defer out.Close()

	log.Infof("Start server on %s", *listen)
	srv := &http.Server{
		Addr:              *listen,
		Handler:           handlers.CombinedLoggingHandler(out, router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
})

var rootCmd = &cobra.Command{
	Use:   "nav-translator",
	Short: "Translate Condor flight plans for glider navigation programs",
	Long: `Translate a Condor flight plan into the task, waypoint, airspace, polar and
profile files of one or more navigation programs.`,
}

func init() {
	rootCmd.AddCommand(translateCmd, watchCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
