package xmpp

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-translator/translator"
)

var ErrConfig = errors.New("missing xmpp config")

type (
	// Config for the notifier.
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	Xmpp struct {
		Config Config
	}
)

func serverName(jid string) string {
	if i := strings.Index(jid, "@"); i >= 0 {
		return strings.SplitN(jid[i+1:], "/", 2)[0]
	}
	return jid
}

// Enabled tells whether enough is configured to send anything.
func (x Xmpp) Enabled() bool {
	return len(x.Config.Jid) > 0 && len(x.Config.Password) > 0 && len(x.Config.To) > 0
}

func (x Xmpp) Send(message string) error {
	if !x.Enabled() {
		return ErrConfig
	}

	host := x.Config.Host
	if len(host) == 0 {
		host = serverName(x.Config.Jid)
	}

	options := xmpp.Options{
		Host:          host,
		User:          x.Config.Jid,
		Password:      x.Config.Password,
		NoTLS:         true,
		StartTLS:      true,
		TLSConfig:     &tls.Config{ServerName: serverName(x.Config.Jid)},
		Debug:         false,
		Session:       false,
		Status:        "xa",
		StatusMessage: "nav-translator",
	}

	log.WithField("host", host).Debug("Create xmpp client")
	talk, err := options.NewClient()
	if err != nil {
		return fmt.Errorf("xmpp connect: %w", err)
	}
	defer talk.Close()

	if _, err := talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message}); err != nil {
		return fmt.Errorf("xmpp send: %w", err)
	}
	return nil
}

// Report sends a summary of a run when a target failed or warned. A notifier
// without config stays silent.
func (x Xmpp) Report(flightPlan string, results []translator.Result) error {
	if !x.Enabled() {
		return nil
	}
	message, ok := Summary(flightPlan, results)
	if !ok {
		return nil
	}
	return x.Send(message)
}

// Summary renders the failures and warnings of a run, one line each. It
// reports false when every target went through cleanly.
func Summary(flightPlan string, results []translator.Result) (string, bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "Translation of %s", flightPlan)
	issues := false
	for _, r := range results {
		if r.Failed() {
			fmt.Fprintf(&b, "\n%s: failed: %s", r.Target, r.Error)
			issues = true
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "\n%s: %s", r.Target, w)
			issues = true
		}
	}
	return b.String(), issues
}
