package daemon

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/davbox/davboxd/config"
	"github.com/davbox/davboxd/helpers"
	"github.com/davbox/davboxd/server"
	"github.com/sirupsen/logrus"
)

// Daemon runs the web server and reacts to system signals.
type Daemon struct {
	log      *logrus.Entry
	srv      *server.Server
	conf     *config.Config
	stopChan chan error
	trapChan chan os.Signal
}

// New returns a new Daemon.
func New(conf *config.Config) *Daemon {
	d := &Daemon{}
	d.log = helpers.GetAppLogger(conf).WithField("module", "daemon")
	d.conf = conf
	d.stopChan = make(chan error, 1)
	d.trapChan = make(chan os.Signal, 1)
	return d
}

// Start launches the web server in the background. Startup errors are
// delivered on the channel returned by TrapSignals.
func (d *Daemon) Start() {
	d.log.Info("daemon will start web server")
	d.srv = server.New(d.conf)
	go func() {
		if err := d.srv.Start(); err != nil {
			d.stopChan <- err
		}
	}()
}

// TrapSignals installs the signal handlers. SIGHUP reloads the
// configuration directives, SIGINT and SIGTERM stop hard and SIGQUIT
// drains in-flight requests first.
func (d *Daemon) TrapSignals() chan error {
	go func() {
		signal.Notify(d.trapChan,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGHUP,
			syscall.SIGQUIT,
		)

		for {
			sig := <-d.trapChan
			switch sig {
			case syscall.SIGHUP:
				if err := d.conf.LoadDirectives(); err != nil {
					d.log.WithField("signal", "SIGHUP").WithError(err).Error("cannot reload configuration")
				} else {
					d.log.WithField("signal", "SIGHUP").Info("configuration reloaded")
				}
			case syscall.SIGINT:
				d.log.WithField("signal", "SIGINT").Warn("server will perform a hard shutdown. Consider to send SIGQUIT instead")
				d.stopChan <- nil
			case syscall.SIGTERM:
				d.log.WithField("signal", "SIGTERM").Warn("server will perform a hard shutdown. Consider to send SIGQUIT instead")
				d.stopChan <- nil
			case syscall.SIGQUIT:
				d.log.WithField("signal", "SIGQUIT").Infof("server will perform a graceful shutdown. Timeout is %d seconds", d.conf.GetDirectives().Server.ShutdownTimeout)
				go func() {
					<-d.srv.StopChan()
					d.log.WithField("signal", "SIGQUIT").Info("graceful shutdown complete")
					d.stopChan <- nil
				}()
				d.srv.Stop()
			}
		}
	}()
	d.log.Info("daemon enabled capture of system signals: SIGINT, SIGTERM, SIGHUP and SIGQUIT")
	return d.stopChan
}
