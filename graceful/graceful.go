package graceful

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Shutdownable can be closed gracefully
type Shutdownable interface {
	Shutdown(context.Context) error
}

type target struct {
	name    string
	shut    Shutdownable
	timeout time.Duration
}

// Closer handles shutdown of servers and connections
type Closer struct {
	mutex   sync.Mutex
	targets []target
	log     logrus.FieldLogger
}

// NewCloser creates a Closer that shuts its targets down on SIGINT/SIGTERM.
func NewCloser(log logrus.FieldLogger) *Closer {
	return &Closer{log: log}
}

// Register inserts a subject to shutdown gracefully
func (c *Closer) Register(name string, shut Shutdownable, timeout time.Duration) {
	c.mutex.Lock()
	c.targets = append(c.targets, target{name: name, shut: shut, timeout: timeout})
	c.mutex.Unlock()
}

// DetectShutdown blocks until the process receives a termination signal,
// then shuts down every registered target concurrently.
func (c *Closer) DetectShutdown() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-signals
	c.log.Infof("Triggering shutdown from signal %s", sig)

	wg := sync.WaitGroup{}
	c.mutex.Lock()
	for _, targ := range c.targets {
		wg.Add(1)
		go func(targ target) {
			defer wg.Done()
			log := c.log.WithField("target", targ.name)
			ctx, cancel := context.WithTimeout(context.Background(), targ.timeout)
			defer cancel()
			if err := targ.shut.Shutdown(ctx); err != nil {
				log.WithError(err).Error("Graceful shutdown failed")
				return
			}
			log.Debug("Shutdown finished")
		}(targ)
	}
	c.mutex.Unlock()
	wg.Wait()
}
