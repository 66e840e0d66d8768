package discovery

import (
	"fmt"
	"os"
	"strings"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/logging"
)

// Advertisement is a running mDNS announcement. Call Shutdown to withdraw it.
type Advertisement struct {
	server   *zeroconf.Server
	Instance string
	Port     int
}

// AdvertiseOptions describes what a preview server announces about itself.
type AdvertiseOptions struct {
	// Instance defaults to "autodm-<hostname>"
	Instance string
	Port     int
	Version  string
	BotName  string
}

// Advertise announces a preview server on the local network.
func Advertise(opts AdvertiseOptions) (*Advertisement, error) {
	if opts.Port <= 0 {
		return nil, fmt.Errorf("cannot advertise invalid port %d", opts.Port)
	}

	instance := opts.Instance
	if instance == "" {
		instance = DefaultInstanceName()
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, opts.Port, TXTRecords(opts), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising preview server",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", opts.Port),
	)

	return &Advertisement{server: server, Instance: instance, Port: opts.Port}, nil
}

// Shutdown withdraws the announcement
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	logging.Info("Stopped advertising preview server", zap.String("instance", a.Instance))
}

// TXTRecords builds the TXT records announced for opts
func TXTRecords(opts AdvertiseOptions) []string {
	txt := []string{txtApp + "=" + AppName}
	if opts.Version != "" {
		txt = append(txt, txtVersion+"="+opts.Version)
	}
	if opts.BotName != "" {
		txt = append(txt, txtBot+"="+opts.BotName)
	}
	return txt
}

// DefaultInstanceName derives an instance name from the machine hostname
func DefaultInstanceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return AppName
	}
	host, _, _ = strings.Cut(host, ".")
	return AppName + "-" + host
}
