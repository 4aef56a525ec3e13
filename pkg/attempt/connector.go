// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package attempt tries wordlist candidates against a wireless network one
// at a time.
package attempt

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/u-root/u-root/pkg/ulog"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

// DefaultSettle is how long the OS gets to associate before the first
// state query.
const DefaultSettle = 5 * time.Second

const defaultPattern = "wifi-profile-*"

var errNotConnected = errors.New("not connected")

// Connector runs single attempts through a wifi backend.
type Connector struct {
	w            wifi.WiFi
	settle       time.Duration
	pollInterval time.Duration
	pollTimeout  time.Duration
	tempDir      string
	log          ulog.Logger
}

// Option configures a Connector.
type Option func(*Connector)

// WithSettle sets the wait between connect and the first state query.
func WithSettle(d time.Duration) Option {
	return func(c *Connector) { c.settle = d }
}

// WithPoll keeps querying the connection state every interval until
// timeout has elapsed. A zero timeout takes a single sample.
func WithPoll(interval, timeout time.Duration) Option {
	return func(c *Connector) { c.pollInterval, c.pollTimeout = interval, timeout }
}

// WithTempDir sets where profile files are written. Empty means os.TempDir.
func WithTempDir(dir string) Option {
	return func(c *Connector) { c.tempDir = dir }
}

func WithLogger(l ulog.Logger) Option {
	return func(c *Connector) { c.log = l }
}

func New(w wifi.WiFi, opts ...Option) *Connector {
	c := &Connector{
		w:            w,
		settle:       DefaultSettle,
		pollInterval: time.Second,
		log:          ulog.Null,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Connector) pattern() string {
	if p, ok := c.w.(interface{ ProfilePattern() string }); ok {
		return p.ProfilePattern()
	}
	return defaultPattern
}

func (c *Connector) writeProfile(n wifi.Network, password string) (string, error) {
	conf, err := c.w.Profile(n, password)
	if err != nil {
		return "", &AttemptError{Op: "render profile", Err: err}
	}
	f, err := os.CreateTemp(c.tempDir, c.pattern())
	if err != nil {
		return "", &AttemptError{Op: "create profile", Err: err}
	}
	if _, err := f.Write(conf); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", &AttemptError{Op: "write profile", Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", &AttemptError{Op: "write profile", Err: err}
	}
	return f.Name(), nil
}

// Attempt installs a profile for n carrying password, connects, and reports
// whether the interface ended up on n. Failures of the install, connect and
// delete commands are logged and otherwise ignored. On success the profile
// stays installed; on failure it is deleted. The profile file is removed in
// both cases.
func (c *Connector) Attempt(ctx context.Context, n wifi.Network, password string) (bool, error) {
	path, err := c.writeProfile(n, password)
	if err != nil {
		return false, err
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.log.Printf("remove %s: %v", path, err)
		}
	}()

	if err := c.w.AddProfile(ctx, n, path); err != nil {
		c.log.Printf("add profile %q: %v", n.SSID, err)
	}
	if err := c.w.Connect(ctx, n); err != nil {
		c.log.Printf("connect %q: %v", n.SSID, err)
	}

	if err := sleep(ctx, c.settle); err != nil {
		c.forget(ctx, n)
		return false, err
	}
	if c.connected(ctx, n.SSID) {
		return true, nil
	}
	c.forget(ctx, n)
	return false, ctx.Err()
}

func (c *Connector) connected(ctx context.Context, ssid string) bool {
	var b backoff.BackOff = &backoff.StopBackOff{}
	if c.pollTimeout > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = c.pollInterval
		eb.MaxInterval = c.pollInterval
		eb.Multiplier = 1
		eb.RandomizationFactor = 0
		eb.MaxElapsedTime = c.pollTimeout
		b = eb
	}

	err := backoff.Retry(func() error {
		ok, err := c.w.Connected(ctx, ssid)
		if err != nil {
			c.log.Printf("query state: %v", err)
			return err
		}
		if !ok {
			return errNotConnected
		}
		return nil
	}, backoff.WithContext(b, ctx))
	return err == nil
}

// forget deletes the profile even when ctx is already cancelled.
func (c *Connector) forget(ctx context.Context, n wifi.Network) {
	if err := c.w.DeleteProfile(context.WithoutCancel(ctx), n); err != nil {
		c.log.Printf("delete profile %q: %v", n.SSID, err)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
