package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// int64List collects a comma separated list of IDs. It implements flag.Value.
type int64List []int64

func (l *int64List) String() string {
	parts := make([]string, 0, len(*l))
	for _, v := range *l {
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	return strings.Join(parts, ",")
}

func (l *int64List) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", part, err)
		}
		*l = append(*l, v)
	}
	return nil
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-api API base address (e.g. http://localhost:8080)
//	-ws websocket broker URL (e.g. ws://localhost:8080/ws/websocket)
//	-request-timeout request timeout (e.g. "15s")
//	-reconnect-delay realtime reconnect delay (e.g. "5s")
//	-storage credential storage driver (sqlite|redis)
//	-d sqlite DSN
//	-redis redis address host:port
//	-credential-key passphrase sealing persisted credentials
//	-metrics-address metrics server address in format [host]:[port]
//	-log-file log file path
//	-log-level log level
//	-login / -password headless login
//	-conversations comma separated conversation IDs to follow
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-chat-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		metricsAddress   NetAddress
		conversations    int64List
		apiAddress       string
		wsURL            string
		requestTimeout   time.Duration
		reconnectDelay   time.Duration
		storageDriver    string
		databaseDSN      string
		redisAddress     string
		credentialKey    string
		logFile          string
		logLevel         string
		username         string
		password         string
		jsonConfigPath   string
		loginURL         string
		handshakeTimeout time.Duration
	)

	fs.StringVar(&apiAddress, "api", "", "API base address")
	fs.StringVar(&wsURL, "ws", "", "Websocket broker URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.DurationVar(&reconnectDelay, "reconnect-delay", 0, "Realtime reconnect delay (e.g., 5s)")
	fs.DurationVar(&handshakeTimeout, "handshake-timeout", 0, "Websocket handshake timeout")
	fs.StringVar(&storageDriver, "storage", "", "Credential storage driver (sqlite|redis)")
	fs.StringVar(&databaseDSN, "d", "", "SQLite DSN")
	fs.StringVar(&redisAddress, "redis", "", "Redis address host:port")
	fs.StringVar(&credentialKey, "credential-key", "", "Passphrase sealing persisted credentials")
	fs.StringVar(&loginURL, "login-url", "", "Login boundary URL")
	fs.Var(&metricsAddress, "metrics-address", "Metrics server address host:port")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&username, "login", "", "Username for headless login")
	fs.StringVar(&password, "password", "", "Password for headless login")
	fs.Var(&conversations, "conversations", "Comma separated conversation IDs to follow")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{CredentialKey: credentialKey, LoginURL: loginURL},
		Adapter: Adapter{
			HTTPAddress:    apiAddress,
			RequestTimeout: requestTimeout,
		},
		Realtime: Realtime{
			WebsocketURL:     wsURL,
			ReconnectDelay:   reconnectDelay,
			HandshakeTimeout: handshakeTimeout,
		},
		Storage: Storage{
			Driver: storageDriver,
			DB:     DB{DSN: databaseDSN},
			Redis:  Redis{Address: redisAddress},
		},
		Logging: Logging{File: logFile, Level: logLevel},
		Metrics: Metrics{Address: metricsAddress.String()},
		Session: Session{
			Username:      username,
			Password:      password,
			Conversations: conversations,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
